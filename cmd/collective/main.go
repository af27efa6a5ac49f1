package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/activechapter/collective"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "collective",
		Short:         "Publishing-collective site engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), initCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the site server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := collective.LoadConfig(configPath)
			if err != nil {
				return err
			}
			app := collective.New(cfg)
			defer app.Close()
			return app.Start()
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "collective.yaml", "path to the YAML config file")
	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file and directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat("collective.yaml"); err == nil {
				return fmt.Errorf("collective.yaml already exists")
			}
			for _, dir := range []string{"data", "public"} {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile("collective.yaml", []byte(starterConfig), 0o644); err != nil {
				return err
			}
			fmt.Println("Wrote collective.yaml. Set adminPassword and sessionSecret before serving.")
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("collective %s\n", version)
		},
	}
}

const starterConfig = `name: Collective
url: http://localhost:3000
description: ""
shopUrl: ""

addr: ":3000"
databasePath: data/collective.db
blobDir: data/blobs
staticDir: public

adminUser: admin
adminPassword: ""
sessionSecret: ""
cookieSecure: false
`

package collective

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a collective site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // site name (default "Collective")
	URL         string `yaml:"url"`         // canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // site description for RSS and meta tags
	ShopURL     string `yaml:"shopUrl"`     // external shop link shown in the shop panel

	Addr         string `yaml:"addr"`         // listen address (default ":3000")
	DatabasePath string `yaml:"databasePath"` // SQLite path (default "data/collective.db")
	BlobDir      string `yaml:"blobDir"`      // object store root (default "data/blobs")
	StaticDir    string `yaml:"staticDir"`    // user static assets (default "public")

	AdminUser     string `yaml:"adminUser"`     // shared credential user (default "admin")
	AdminPassword string `yaml:"adminPassword"` // required: shared credential password
	SessionSecret string `yaml:"sessionSecret"` // required: session encryption secret
	CookieSecure  bool   `yaml:"cookieSecure"`  // set true for HTTPS

	ListCacheTTL time.Duration `yaml:"listCacheTTL"` // summaries cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Collective"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/collective.db"
	}
	if c.BlobDir == "" {
		c.BlobDir = "data/blobs"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.AdminUser == "" {
		c.AdminUser = "admin"
	}
	if c.ListCacheTTL == 0 {
		c.ListCacheTTL = 5 * time.Minute
	}
}

// LoadConfig reads a YAML config file and applies environment overrides.
// A missing file is not an error; env vars alone can configure the site.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) applyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Name, "SITE_NAME")
	set(&c.URL, "SITE_URL")
	set(&c.Description, "SITE_DESCRIPTION")
	set(&c.ShopURL, "SHOP_URL")
	set(&c.Addr, "ADDR")
	set(&c.DatabasePath, "DATABASE_PATH")
	set(&c.BlobDir, "BLOB_DIR")
	set(&c.StaticDir, "STATIC_DIR")
	set(&c.AdminUser, "ADMIN_USER")
	set(&c.AdminPassword, "ADMIN_PASSWORD")
	set(&c.SessionSecret, "ADMIN_SESSION_SECRET")
	if strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true") {
		c.CookieSecure = true
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance
// before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// Raw renders a trusted HTML string without escaping. Only editor-produced
// content and the singleton blobs go through here.
func Raw(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	})
}

// Page renders the full public document: head, panel layout, and the
// stock scripts.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		buf.WriteString("<meta charset=\"utf-8\"/>")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		writeHead(&buf, data)
		buf.WriteString("</head><body>")
		renderLayout(&buf, data)
		buf.WriteString("<script src=\"/public/htmx.min.js\"></script>")
		buf.WriteString("<script src=\"/public/panels.js\" defer></script>")
		buf.WriteString("</body></html>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// PanelsPartial renders only the layout region, for HTMX swaps after a
// dispatch.
func PanelsPartial(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderLayout(&buf, data)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHead(buf *bytes.Buffer, data PageData) {
	title := data.Site.Name
	if data.Current != nil {
		title = data.Current.Title + " | " + data.Site.Name
	}
	buf.WriteString("<title>")
	buf.WriteString(esc(title))
	buf.WriteString("</title>")
	if data.Site.Description != "" {
		buf.WriteString("<meta name=\"description\" content=\"")
		buf.WriteString(esc(data.Site.Description))
		buf.WriteString("\"/>")
	}
	buf.WriteString("<link rel=\"stylesheet\" href=\"/public/styles.css\"/>")
	buf.WriteString("<link rel=\"icon\" href=\"/favicon.svg\" type=\"image/svg+xml\"/>")
	buf.WriteString("<script type=\"application/ld+json\">")
	if data.Current != nil {
		buf.WriteString(ArticleJsonLD(data.Site, *data.Current))
	} else {
		buf.WriteString(WebsiteJsonLD(data.Site))
	}
	buf.WriteString("</script>")
}

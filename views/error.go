package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

func errorPage(code, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"/><title>")
		buf.WriteString(esc(code))
		buf.WriteString("</title><link rel=\"stylesheet\" href=\"/public/styles.css\"/></head>")
		buf.WriteString("<body class=\"error-page\"><main><h1>")
		buf.WriteString(esc(code))
		buf.WriteString("</h1><p>")
		buf.WriteString(esc(message))
		buf.WriteString("</p><p><a href=\"/\">Back home</a></p></main></body></html>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return errorPage("404", "That page does not exist.")
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return errorPage("500", "Something went wrong.")
}

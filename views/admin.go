package views

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

func adminPage(title string, body func(*bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		buf.WriteString("<meta charset=\"utf-8\"/>")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		buf.WriteString("<meta name=\"robots\" content=\"noindex\"/>")
		buf.WriteString("<title>")
		buf.WriteString(esc(title))
		buf.WriteString("</title>")
		buf.WriteString("<link rel=\"stylesheet\" href=\"/public/styles.css\"/>")
		buf.WriteString("</head><body class=\"admin\">")
		body(&buf)
		buf.WriteString("<script src=\"/public/htmx.min.js\"></script>")
		buf.WriteString("<script src=\"/public/dirty.js\" defer></script>")
		buf.WriteString("</body></html>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// AdminLogin renders the password form, with an error notice after a
// failed attempt.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return adminPage("Admin Login", func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-login"><h1>Admin</h1>`)
		if showError {
			buf.WriteString(`<p class="notice error">Wrong password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<input type="password" name="password" placeholder="Password" autofocus required/>`)
		buf.WriteString(`<button type="submit">Sign in</button></form></main>`)
	})
}

// AdminDashboard lists all articles with edit and delete controls.
func AdminDashboard(site SiteConfig, articles []Article, message, csrfToken string) templ.Component {
	return adminPage("Dashboard | "+site.Name, func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-dashboard"><header><h1>`)
		buf.WriteString(esc(site.Name))
		buf.WriteString(` · Articles</h1><nav>`)
		buf.WriteString(`<a href="/admin/article/new/">New article</a> `)
		buf.WriteString(`<a href="/admin/about/">About page</a> `)
		buf.WriteString(`<a href="/admin/popup/">Popup</a> `)
		buf.WriteString(`<a href="/admin/images/">Images</a>`)
		buf.WriteString(`<form method="post" action="/admin/logout/" class="inline">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<button type="submit">Log out</button></form>`)
		buf.WriteString("</nav></header>")
		if message != "" {
			buf.WriteString(`<p class="notice">`)
			buf.WriteString(esc(message))
			buf.WriteString("</p>")
		}
		if len(articles) == 0 {
			buf.WriteString(`<p class="empty">No articles yet.</p>`)
		} else {
			buf.WriteString(`<table class="article-table"><thead><tr><th>Title</th><th>Author</th><th>Journal</th><th>Date</th><th></th></tr></thead><tbody>`)
			for _, a := range articles {
				buf.WriteString("<tr><td><a href=\"/admin/article/")
				buf.WriteString(esc(PathEscape(a.ID)))
				buf.WriteString("/\">")
				buf.WriteString(esc(a.Title))
				buf.WriteString("</a></td><td>")
				buf.WriteString(esc(a.Author))
				buf.WriteString("</td><td>")
				buf.WriteString(esc(a.Journal))
				buf.WriteString("</td><td>")
				buf.WriteString(esc(a.Date))
				buf.WriteString(`</td><td><button type="button" hx-delete="/admin/article/`)
				buf.WriteString(esc(PathEscape(a.ID)))
				buf.WriteString(`/" hx-headers="`)
				buf.WriteString(hxVals(map[string]string{"X-CSRF-Token": csrfToken}))
				buf.WriteString(`" hx-confirm="Delete this article?" hx-target="body">Delete</button></td></tr>`)
			}
			buf.WriteString("</tbody></table>")
		}
		buf.WriteString("</main>")
	})
}

// AdminEditor renders the article form. Validation errors appear next to
// the fields they name; the form body keeps whatever the author typed.
func AdminEditor(article Article, tax Taxonomy, errs []FieldError, csrfToken string) templ.Component {
	title := "New article"
	action := "/admin/save/"
	if article.ID != "" {
		title = "Edit: " + article.Title
	}
	byField := make(map[string]string, len(errs))
	for _, e := range errs {
		byField[e.Field] = e.Message
	}
	return adminPage(title, func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-editor"><h1>`)
		buf.WriteString(esc(title))
		buf.WriteString(`</h1><p><a href="/admin/">Back to dashboard</a></p>`)
		buf.WriteString(`<form method="post" action="`)
		buf.WriteString(action)
		buf.WriteString(`" data-dirty-guard>`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<input type="hidden" name="id" value="`)
		buf.WriteString(esc(article.ID))
		buf.WriteString(`"/>`)

		textField(buf, "title", "Title", article.Title, byField["title"])
		comboField(buf, "author", "Author", article.Author, tax.Authors, byField["author"])
		comboField(buf, "journal", "Journal", article.Journal, tax.Journals, byField["journal"])
		comboField(buf, "medium", "Medium", article.Medium, tax.Mediums, byField["medium"])
		textField(buf, "date", "Publish date (YYYY-MM-DD)", article.Date, byField["date"])
		textField(buf, "tags", "Tags (comma-separated)", joinComma(article.Tags), byField["tags"])
		textField(buf, "coverImage", "Cover image key", article.CoverImage, byField["coverImage"])

		fieldNotice(buf, byField["content"])
		buf.WriteString(`<label>Content<textarea name="content" rows="24">`)
		buf.WriteString(esc(article.Content))
		buf.WriteString("</textarea></label>")

		buf.WriteString(`<button type="submit">Save</button></form></main>`)
	})
}

// AdminContent renders the singleton-blob editor shared by the about page
// and the popup.
func AdminContent(heading, action, content, message, csrfToken string) templ.Component {
	return adminPage(heading, func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-editor"><h1>`)
		buf.WriteString(esc(heading))
		buf.WriteString(`</h1><p><a href="/admin/">Back to dashboard</a></p>`)
		if message != "" {
			buf.WriteString(`<p class="notice">`)
			buf.WriteString(esc(message))
			buf.WriteString("</p>")
		}
		buf.WriteString(`<form method="post" action="`)
		buf.WriteString(esc(action))
		buf.WriteString(`" data-dirty-guard>`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<textarea name="content" rows="20">`)
		buf.WriteString(esc(content))
		buf.WriteString("</textarea>")
		buf.WriteString(`<button type="submit">Save</button></form></main>`)
	})
}

// AdminImages lists uploaded images with an upload form and per-image
// delete buttons.
func AdminImages(images []Image, csrfToken string) templ.Component {
	return adminPage("Images", func(buf *bytes.Buffer) {
		buf.WriteString(`<main class="admin-images"><h1>Images</h1>`)
		buf.WriteString(`<p><a href="/admin/">Back to dashboard</a></p>`)
		buf.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		csrfField(buf, csrfToken)
		buf.WriteString(`<input type="file" name="image" accept="image/*" required/>`)
		buf.WriteString(`<button type="submit">Upload</button></form>`)
		if len(images) == 0 {
			buf.WriteString(`<p class="empty">No images uploaded.</p>`)
		} else {
			buf.WriteString(`<ul class="image-grid">`)
			for _, img := range images {
				buf.WriteString(`<li><img src="/api/images/`)
				buf.WriteString(esc(PathEscape(img.Key)))
				buf.WriteString(`" alt="`)
				buf.WriteString(esc(img.OriginalName))
				buf.WriteString(`" loading="lazy"/><code>`)
				buf.WriteString(esc(img.Key))
				buf.WriteString("</code><span>")
				buf.WriteString(strconv.Itoa(img.Width))
				buf.WriteString("×")
				buf.WriteString(strconv.Itoa(img.Height))
				buf.WriteString(`</span><button type="button" hx-delete="/admin/images/`)
				buf.WriteString(esc(PathEscape(img.Key)))
				buf.WriteString(`/" hx-headers="`)
				buf.WriteString(hxVals(map[string]string{"X-CSRF-Token": csrfToken}))
				buf.WriteString(`" hx-confirm="Delete this image?" hx-target="body">Delete</button></li>`)
			}
			buf.WriteString("</ul>")
		}
		buf.WriteString("</main>")
	})
}

func csrfField(buf *bytes.Buffer, token string) {
	buf.WriteString(`<input type="hidden" name="_csrf" value="`)
	buf.WriteString(esc(token))
	buf.WriteString(`"/>`)
}

func textField(buf *bytes.Buffer, name, label, value, errMsg string) {
	fieldNotice(buf, errMsg)
	buf.WriteString("<label>")
	buf.WriteString(esc(label))
	buf.WriteString(`<input type="text" name="`)
	buf.WriteString(name)
	buf.WriteString(`" value="`)
	buf.WriteString(esc(value))
	buf.WriteString(`"/></label>`)
}

// comboField is a text input backed by a datalist, so an existing entry
// can be picked or a new one typed.
func comboField(buf *bytes.Buffer, name, label, value string, items []MetadataItem, errMsg string) {
	fieldNotice(buf, errMsg)
	buf.WriteString("<label>")
	buf.WriteString(esc(label))
	buf.WriteString(`<input type="text" name="`)
	buf.WriteString(name)
	buf.WriteString(`" value="`)
	buf.WriteString(esc(value))
	buf.WriteString(`" list="dl-`)
	buf.WriteString(name)
	buf.WriteString(`"/></label><datalist id="dl-`)
	buf.WriteString(name)
	buf.WriteString(`">`)
	for _, item := range items {
		buf.WriteString(`<option value="`)
		buf.WriteString(esc(item.Label))
		buf.WriteString(`"></option>`)
	}
	buf.WriteString("</datalist>")
}

func fieldNotice(buf *bytes.Buffer, msg string) {
	if msg == "" {
		return
	}
	buf.WriteString(`<p class="notice error">`)
	buf.WriteString(esc(msg))
	buf.WriteString("</p>")
}

func joinComma(vals []string) string {
	out := ""
	for i, v := range vals {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}

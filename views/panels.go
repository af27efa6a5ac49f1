package views

import (
	"bytes"

	"github.com/activechapter/collective/viewstate"
)

const dispatchAttrs = ` hx-post="/view/" hx-target="#layout" hx-swap="outerHTML"`

// renderLayout writes the four-panel region. Every panel carries its width
// mode as a class so the stylesheet animates the transition, and its
// header dispatches a panel click.
func renderLayout(buf *bytes.Buffer, data PageData) {
	buf.WriteString(`<main id="layout" class="layout">`)
	for _, p := range viewstate.Panels {
		renderPanel(buf, data, p)
	}
	buf.WriteString("</main>")
}

func renderPanel(buf *bytes.Buffer, data PageData, p viewstate.Panel) {
	width := data.State.Width(p)
	buf.WriteString(`<section class="panel panel-`)
	buf.WriteString(string(p))
	buf.WriteString(` is-`)
	buf.WriteString(string(width))
	buf.WriteString(`" data-panel="`)
	buf.WriteString(string(p))
	buf.WriteString(`">`)

	panelHeader(buf, p, panelTitle(data, p))

	if width != viewstate.Closed {
		buf.WriteString(`<div class="panel-body">`)
		switch p {
		case viewstate.PanelHome:
			renderHomePanel(buf, data)
		case viewstate.PanelArticle:
			renderArticlePanel(buf, data)
		case viewstate.PanelShop:
			renderShopPanel(buf, data)
		case viewstate.PanelAbout:
			renderAboutPanel(buf, data)
		}
		buf.WriteString("</div>")
	}
	buf.WriteString("</section>")
}

func panelTitle(data PageData, p viewstate.Panel) string {
	switch p {
	case viewstate.PanelHome:
		return data.Site.Name
	case viewstate.PanelArticle:
		if data.Current != nil {
			return data.Current.Title
		}
		return "Reading"
	case viewstate.PanelShop:
		return "Shop"
	case viewstate.PanelAbout:
		return "About"
	}
	return ""
}

func panelHeader(buf *bytes.Buffer, p viewstate.Panel, title string) {
	buf.WriteString(`<button type="button" class="panel-header"`)
	buf.WriteString(dispatchAttrs)
	buf.WriteString(` hx-vals="`)
	buf.WriteString(hxVals(map[string]string{"kind": "panel", "panel": string(p)}))
	buf.WriteString(`"><h2>`)
	buf.WriteString(esc(title))
	buf.WriteString("</h2></button>")
}

func renderHomePanel(buf *bytes.Buffer, data PageData) {
	if data.Popup != "" {
		buf.WriteString(`<div class="popup">`)
		buf.WriteString(data.Popup)
		buf.WriteString("</div>")
	}
	renderFilterBar(buf, data)
	renderArticleList(buf, data)
}

func renderFilterBar(buf *bytes.Buffer, data PageData) {
	buf.WriteString(`<nav class="filters">`)
	filterAxis(buf, data.Filters, "author", "Authors", data.Taxonomy.Authors, data.Filters.Authors)
	filterAxis(buf, data.Filters, "journal", "Journals", data.Taxonomy.Journals, data.Filters.Journals)
	filterAxis(buf, data.Filters, "medium", "Mediums", data.Taxonomy.Mediums, data.Filters.Mediums)
	filterAxis(buf, data.Filters, "tag", "Tags", data.Taxonomy.Tags, data.Filters.Tags)
	buf.WriteString("</nav>")
}

func filterAxis(buf *bytes.Buffer, f Filters, axis, label string, items []MetadataItem, active []string) {
	if len(items) == 0 {
		return
	}
	buf.WriteString(`<div class="filter-axis"><span class="filter-label">`)
	buf.WriteString(esc(label))
	buf.WriteString("</span>")
	for _, item := range items {
		buf.WriteString(`<a class="filter-pill`)
		if filterActive(active, item.Label) {
			buf.WriteString(" is-active")
		}
		buf.WriteString(`" href="`)
		buf.WriteString(esc(filterHref(f, axis, item.Label)))
		buf.WriteString(`">`)
		buf.WriteString(esc(item.Label))
		buf.WriteString("</a>")
	}
	buf.WriteString("</div>")
}

func renderArticleList(buf *bytes.Buffer, data PageData) {
	if len(data.Articles) == 0 {
		buf.WriteString(`<p class="empty">No articles match.</p>`)
		return
	}
	buf.WriteString(`<ul class="article-list">`)
	for _, a := range data.Articles {
		buf.WriteString(`<li><button type="button" class="article-link`)
		if data.State.ArticleOpen() && data.State.Selected == a.Title {
			buf.WriteString(" is-open")
		}
		buf.WriteString(`"`)
		buf.WriteString(dispatchAttrs)
		buf.WriteString(` hx-vals="`)
		buf.WriteString(hxVals(map[string]string{"kind": "article", "title": a.Title}))
		buf.WriteString(`">`)
		buf.WriteString(`<span class="article-title">`)
		buf.WriteString(esc(a.Title))
		buf.WriteString(`</span><span class="article-meta">`)
		buf.WriteString(esc(a.Author))
		if a.Journal != "" {
			buf.WriteString(" · ")
			buf.WriteString(esc(a.Journal))
		}
		if a.Date != "" {
			buf.WriteString(" · ")
			buf.WriteString(esc(a.Date))
		}
		buf.WriteString("</span></button></li>")
	}
	buf.WriteString("</ul>")
}

func renderArticlePanel(buf *bytes.Buffer, data PageData) {
	if data.Current == nil {
		buf.WriteString(`<p class="empty">Select an article to read.</p>`)
		return
	}
	a := data.Current
	buf.WriteString(`<article class="reader">`)
	if a.CoverImage != "" {
		buf.WriteString(`<img class="cover" src="/api/images/`)
		buf.WriteString(esc(PathEscape(a.CoverImage)))
		buf.WriteString(`" alt=""/>`)
	}
	buf.WriteString("<h1>")
	buf.WriteString(esc(a.Title))
	buf.WriteString(`</h1><p class="byline">`)
	buf.WriteString(esc(a.Author))
	if a.Journal != "" {
		buf.WriteString(" · ")
		buf.WriteString(esc(a.Journal))
	}
	if a.Medium != "" {
		buf.WriteString(" · ")
		buf.WriteString(esc(a.Medium))
	}
	buf.WriteString(`</p><div class="reader-content">`)
	buf.WriteString(a.Content)
	buf.WriteString("</div></article>")
}

func renderShopPanel(buf *bytes.Buffer, data PageData) {
	buf.WriteString(`<div class="shop">`)
	if data.Site.ShopURL != "" {
		buf.WriteString(`<a class="shop-link" href="`)
		buf.WriteString(esc(data.Site.ShopURL))
		buf.WriteString(`" target="_blank" rel="noopener noreferrer">Visit the shop</a>`)
	} else {
		buf.WriteString(`<p class="empty">The shop is coming soon.</p>`)
	}
	buf.WriteString("</div>")
}

func renderAboutPanel(buf *bytes.Buffer, data PageData) {
	buf.WriteString(`<div class="about">`)
	if data.About != "" {
		buf.WriteString(data.About)
	} else {
		buf.WriteString(`<p class="empty">Nothing here yet.</p>`)
	}
	buf.WriteString("</div>")
}

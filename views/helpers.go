package views

import (
	"encoding/json"
	"html"
	"net/url"
	"strings"
)

// esc escapes a string for HTML text and attribute positions.
func esc(s string) string {
	return html.EscapeString(s)
}

// PathEscape wraps url.PathEscape for building API links in templates.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// hxVals serializes dispatch parameters for an hx-vals attribute. Keys and
// values pass through JSON encoding, then attribute escaping.
func hxVals(pairs map[string]string) string {
	b, err := json.Marshal(pairs)
	if err != nil {
		return "{}"
	}
	return esc(string(b))
}

// filterHref builds a listing URL that toggles one filter value on an
// axis, keeping the other active filters.
func filterHref(f Filters, axis, value string) string {
	q := url.Values{}
	add := func(key string, active []string) {
		toggled := false
		for _, v := range active {
			if key == axis && v == value {
				toggled = true
				continue
			}
			q.Add(key, v)
		}
		if key == axis && !toggled {
			q.Add(key, value)
		}
	}
	add("author", f.Authors)
	add("journal", f.Journals)
	add("medium", f.Mediums)
	add("tag", f.Tags)
	if enc := q.Encode(); enc != "" {
		return "/?" + enc
	}
	return "/"
}

func filterActive(active []string, value string) bool {
	for _, v := range active {
		if v == value {
			return true
		}
	}
	return false
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      cfg.URL,
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ArticleJsonLD produces a Schema.org Article JSON-LD block for the
// selected article.
func ArticleJsonLD(cfg SiteConfig, a Article) string {
	articleURL := cfg.URL + "/?view=expanded&article=" + url.QueryEscape(a.Title)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      a.Title,
		"datePublished": a.Date,
		"url":           articleURL,
		"author": map[string]string{
			"@type": "Person",
			"name":  a.Author,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
	}
	if len(a.Tags) > 0 {
		data["keywords"] = strings.Join(a.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

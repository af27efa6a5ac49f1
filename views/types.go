package views

import "github.com/activechapter/collective/viewstate"

// SiteConfig carries the site-wide values templates need. Handlers copy
// the relevant fields out of the application config so templates never
// see credentials.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	ShopURL     string
}

// Article is the template-side article shape. Summaries leave Content
// empty; the reader panel gets a fully hydrated value.
type Article struct {
	ID         string
	Title      string
	Author     string
	Journal    string
	Medium     string
	Date       string // YYYY-MM-DD
	Tags       []string
	CoverImage string
	Content    string // opaque editor HTML, rendered unescaped
}

// MetadataItem is one taxonomy entry: display label plus slug value.
type MetadataItem struct {
	Label string
	Value string
}

// Taxonomy groups the four classification axes for the filter bar and the
// editor comboboxes.
type Taxonomy struct {
	Authors  []MetadataItem
	Journals []MetadataItem
	Mediums  []MetadataItem
	Tags     []MetadataItem
}

// Filters holds the active filter labels per axis.
type Filters struct {
	Authors  []string
	Journals []string
	Mediums  []string
	Tags     []string
}

// Image is uploaded-image metadata for the admin picker.
type Image struct {
	Key          string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// FieldError is a per-field validation notice shown next to the editor
// field it names.
type FieldError struct {
	Field   string
	Message string
}

// PageData is everything the public page needs for one render: the layout
// state, the filtered listing, the selected article if any, and the
// singleton content blobs.
type PageData struct {
	Site     SiteConfig
	State    viewstate.State
	Articles []Article
	Taxonomy Taxonomy
	Filters  Filters
	Current  *Article
	About    string
	Popup    string
}

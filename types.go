// Package collective is the publishing-collective site engine: a public
// four-panel reading page, a JSON content API, and an admin editor, backed
// by SQLite for metadata and a content-addressed blob store for article
// bodies and images.
package collective

import "time"

// ArticleSummary is an article's listing metadata without its body.
// Summaries are produced by listing queries and replaced wholesale on the
// next fetch.
type ArticleSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Journal     string    `json:"journal"`
	Medium      string    `json:"medium"`
	PublishDate time.Time `json:"publishDate"`
	Tags        []string  `json:"tags"`
	CoverImage  string    `json:"coverImage,omitempty"`
}

// Article is a summary plus the rich-text body. Content is an opaque HTML
// string produced by the admin editor.
type Article struct {
	ArticleSummary
	Content string `json:"content"`
}

// MetadataItem is one taxonomy entry in combobox form: Label is the
// display name, Value the slug used as the de-duplication key.
type MetadataItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Taxonomy groups the reference entities articles are classified by.
type Taxonomy struct {
	Authors  []MetadataItem `json:"authors"`
	Journals []MetadataItem `json:"journals"`
	Mediums  []MetadataItem `json:"mediums"`
	Tags     []MetadataItem `json:"tags"`
}

// Image records an uploaded image's metadata. The Key doubles as the
// blob-store object name and is derived from the content hash, so the
// same upload always lands on the same key.
type Image struct {
	Key          string `json:"key"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Size         int    `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}

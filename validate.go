package collective

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ValidationError names the offending field so the editor can surface a
// field-specific notice. Failing validation blocks the save only; the
// form stays editable.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateArticle applies the editor's pre-save rules: title, author and
// journal must be non-empty, at least one tag is required, and the body
// must contain actual text. An empty editor serializes to an empty
// paragraph, which does not count.
func ValidateArticle(a Article) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(a.Title) == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "Title is required"})
	}
	if strings.TrimSpace(a.Author) == "" {
		errs = append(errs, ValidationError{Field: "author", Message: "Author is required"})
	}
	if strings.TrimSpace(a.Journal) == "" {
		errs = append(errs, ValidationError{Field: "journal", Message: "Journal is required"})
	}
	if len(FilterEmpty(a.Tags)) == 0 {
		errs = append(errs, ValidationError{Field: "tags", Message: "At least one tag is required"})
	}
	if emptyContent(a.Content) {
		errs = append(errs, ValidationError{Field: "content", Message: "Article content is required"})
	}
	return errs
}

// emptyContent reports whether the rich-text HTML carries no visible
// content. Text is extracted from the parsed document, so "<p></p>" and
// whitespace-only markup are both empty, while an image-only body is not.
func emptyContent(content string) bool {
	if strings.TrimSpace(content) == "" {
		return true
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		// Unparseable markup: fall back to the raw comparison against the
		// editor's canonical empty serialization.
		return strings.TrimSpace(content) == "<p></p>"
	}
	if strings.TrimSpace(doc.Text()) != "" {
		return false
	}
	return doc.Find("img, figure, iframe, video").Length() == 0
}

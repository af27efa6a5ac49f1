package collective

import "testing"

func validArticle() Article {
	return Article{
		ArticleSummary: ArticleSummary{
			Title:   "Walking the Grid",
			Author:  "Max Chu",
			Journal: "Field Notes",
			Tags:    []string{"cities"},
		},
		Content: "<p>Some real text.</p>",
	}
}

func hasFieldError(errs []ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateArticleOK(t *testing.T) {
	if errs := ValidateArticle(validArticle()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateArticleMissingFields(t *testing.T) {
	a := validArticle()
	a.Title = "  "
	a.Author = ""
	a.Journal = ""
	a.Tags = nil

	errs := ValidateArticle(a)
	for _, field := range []string{"title", "author", "journal", "tags"} {
		if !hasFieldError(errs, field) {
			t.Errorf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestValidateArticleEmptyContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		empty   bool
	}{
		{"blank", "", true},
		{"whitespace", "   \n ", true},
		{"empty paragraph", "<p></p>", true},
		{"nested empty markup", "<div><p> </p></div>", true},
		{"real text", "<p>hello</p>", false},
		{"image only", `<p><img src="/api/images/x.jpg"/></p>`, false},
		{"embedded video", `<iframe src="https://example.org/v"></iframe>`, false},
	}
	for _, tt := range tests {
		a := validArticle()
		a.Content = tt.content
		errs := ValidateArticle(a)
		if got := hasFieldError(errs, "content"); got != tt.empty {
			t.Errorf("%s: content error = %v, want %v", tt.name, got, tt.empty)
		}
	}
}

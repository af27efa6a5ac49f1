package collective

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Max Chu", "max-chu"},
		{"max chu", "max-chu"},
		{"  Field   Notes  ", "field-notes"},
		{"Under_score", "under_score"},
		{"Échelle!", "chelle"},
		{"already-sluggy", "already-sluggy"},
		{"--weird--", "weird"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestArticleURL(t *testing.T) {
	got := ArticleURL("https://example.org", "Walking the Grid")
	want := "https://example.org?article=Walking+the+Grid&view=expanded"
	if got != want {
		t.Errorf("ArticleURL = %q, want %q", got, want)
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{",", nil},
		{"cities, water", []string{"cities", "water"}},
		{" cities ,, sound ", []string{"cities", "sound"}},
	}
	for _, tt := range tests {
		got := SplitTags(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("SplitTags(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitTags(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

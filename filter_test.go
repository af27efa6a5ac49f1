package collective

import "testing"

func filterFixture() []ArticleSummary {
	return []ArticleSummary{
		{ID: "1", Title: "A", Author: "Max Chu", Journal: "Field Notes", Medium: "Essay", Tags: []string{"cities"}},
		{ID: "2", Title: "B", Author: "Iris Wen", Journal: "Field Notes", Medium: "Photo", Tags: []string{"cities", "water"}},
		{ID: "3", Title: "C", Author: "Max Chu", Journal: "Night Paper", Medium: "Essay", Tags: []string{"sound"}},
	}
}

func TestFilterEmptySelectionIsIdentity(t *testing.T) {
	articles := filterFixture()
	got := FilterArticles(articles, Selection{})
	if len(got) != len(articles) {
		t.Fatalf("count = %d, want %d", len(got), len(articles))
	}
	for i := range got {
		if got[i].ID != articles[i].ID {
			t.Errorf("order changed at %d: got %s want %s", i, got[i].ID, articles[i].ID)
		}
	}
}

func TestFilterOrWithinAxis(t *testing.T) {
	got := FilterArticles(filterFixture(), Selection{Authors: []string{"Max Chu", "Iris Wen"}})
	if len(got) != 3 {
		t.Errorf("count = %d, want 3 (OR within authors)", len(got))
	}
}

func TestFilterAndAcrossAxes(t *testing.T) {
	got := FilterArticles(filterFixture(), Selection{
		Authors:  []string{"Max Chu"},
		Journals: []string{"Field Notes"},
	})
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("got %v, want just article 1", got)
	}
}

func TestFilterTagsMatchAny(t *testing.T) {
	got := FilterArticles(filterFixture(), Selection{Tags: []string{"water", "sound"}})
	if len(got) != 2 {
		t.Errorf("count = %d, want 2", len(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	sel := Selection{Mediums: []string{"Essay"}}
	once := FilterArticles(filterFixture(), sel)
	twice := FilterArticles(once, sel)
	if len(once) != len(twice) {
		t.Fatalf("idempotence broken: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("order changed at %d", i)
		}
	}
}

func TestFilterNoMatches(t *testing.T) {
	got := FilterArticles(filterFixture(), Selection{Journals: []string{"Unknown"}})
	if len(got) != 0 {
		t.Errorf("count = %d, want 0", len(got))
	}
}

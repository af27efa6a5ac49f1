package collective

// Selection holds the article-browser filter choices, one set per
// taxonomy axis. An empty set on an axis means "no filtering on that
// axis", not "match nothing".
type Selection struct {
	Authors  []string
	Journals []string
	Mediums  []string
	Tags     []string
}

// IsEmpty reports whether no filter is active on any axis.
func (s Selection) IsEmpty() bool {
	return len(s.Authors) == 0 && len(s.Journals) == 0 && len(s.Mediums) == 0 && len(s.Tags) == 0
}

// FilterArticles filters summaries against the selection: AND across the
// four axes, OR within one. Input order is preserved and the input slice
// is never mutated. Filtering an already-filtered result with the same
// selection returns the same set.
func FilterArticles(articles []ArticleSummary, sel Selection) []ArticleSummary {
	if sel.IsEmpty() {
		return articles
	}
	authors := toSet(sel.Authors)
	journals := toSet(sel.Journals)
	mediums := toSet(sel.Mediums)
	tags := toSet(sel.Tags)

	out := make([]ArticleSummary, 0, len(articles))
	for _, a := range articles {
		if len(authors) > 0 && !authors[a.Author] {
			continue
		}
		if len(journals) > 0 && !journals[a.Journal] {
			continue
		}
		if len(mediums) > 0 && !mediums[a.Medium] {
			continue
		}
		if len(tags) > 0 && !intersects(a.Tags, tags) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func toSet(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

func intersects(vals []string, set map[string]bool) bool {
	for _, v := range vals {
		if set[v] {
			return true
		}
	}
	return false
}

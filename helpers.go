package collective

import (
	"net/url"
	"path"
	"strings"
	"unicode"
)

// Slugify derives the taxonomy de-duplication key from a display name:
// lowercase, whitespace runs become a single hyphen, anything else outside
// [a-z0-9_-] is dropped. "Max Chu" and "max chu" collide on "max-chu";
// the slug is the identity, the display name is last-write-wins.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	hyphen := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			hyphen = false
		case r == '-':
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// ArticleURL returns the canonical public URL for an article: the home
// page with the view/article parameters set to the expanded panel.
func ArticleURL(base, title string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := url.Values{}
	q.Set("view", "expanded")
	q.Set("article", title)
	u.RawQuery = q.Encode()
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitTags parses a comma-separated tag field into trimmed, non-empty tags.
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return FilterEmpty(parts)
}

// JoinTags joins tags with ", " for form fields.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

package viewstate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeQueryDefaultIsEmpty(t *testing.T) {
	assert.Empty(t, EncodeQuery(DefaultState()).Encode())
}

func TestEncodeQueryArticle(t *testing.T) {
	s := Reduce(DefaultState(), OpenArticle{Title: "How To Eat Ramen"})
	v := EncodeQuery(s)

	assert.Equal(t, "expanded", v.Get("view"))
	assert.Equal(t, "How To Eat Ramen", v.Get("article"))

	s = Reduce(s, FullArticle{})
	assert.Equal(t, "full", EncodeQuery(s).Get("view"))
}

func TestEncodeQueryArticleWithoutSelection(t *testing.T) {
	// An open panel still waiting for hydration encodes nothing rather
	// than a dangling view parameter.
	s := State{Focus: FocusArticle}
	assert.Empty(t, EncodeQuery(s).Encode())
}

func TestEncodeQueryFocusedPanels(t *testing.T) {
	for _, p := range []Panel{PanelShop, PanelAbout, PanelHome} {
		s := Reduce(DefaultState(), OpenPanel{Target: p})
		assert.Equal(t, string(p), EncodeQuery(s).Get("view"))
		assert.Empty(t, EncodeQuery(s).Get("article"))
	}
}

// Dispatching open-shop and reloading the resulting URL must reproduce
// the shop-focused layout.
func TestShopURLRoundTrip(t *testing.T) {
	s := Reduce(DefaultState(), OpenPanel{Target: PanelShop})

	got := StateFromQuery(EncodeQuery(s))

	require.Equal(t, Full, got.Width(PanelShop))
	assert.Equal(t, Closed, got.Width(PanelHome))
	assert.Equal(t, Closed, got.Width(PanelArticle))
	assert.Equal(t, Closed, got.Width(PanelAbout))
}

func TestArticleURLRoundTrip(t *testing.T) {
	s := Reduce(DefaultState(), OpenArticle{Title: "A"})
	got := StateFromQuery(EncodeQuery(s))

	assert.Equal(t, Expanded, got.Width(PanelArticle))
	assert.Equal(t, "A", got.Selected)
}

func TestStateFromQueryArticleViews(t *testing.T) {
	for view, want := range map[string]WidthMode{
		"expanded":   Expanded,
		"full":       Full,
		"fullMobile": FullMobile,
	} {
		v := url.Values{"view": {view}}
		got := StateFromQuery(v)
		assert.Equal(t, want, got.Width(PanelArticle), "view=%s", view)
		assert.Empty(t, got.Selected, "selection pending hydration")
	}
}

func TestStateFromQueryGarbageFallsBack(t *testing.T) {
	for _, view := range []string{"", "closed", "third", "nonsense"} {
		got := StateFromQuery(url.Values{"view": {view}})
		assert.Equal(t, DefaultState(), got, "view=%q", view)
	}
}

package viewstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleOpensWhenClosed(t *testing.T) {
	assert.Equal(t, OpenArticle{Title: "A"}, Toggle(DefaultState(), "A", false))
	assert.Equal(t, OpenArticleMobile{Title: "A"}, Toggle(DefaultState(), "A", true))
}

func TestToggleSameArticleCollapses(t *testing.T) {
	s := Reduce(DefaultState(), OpenArticle{Title: "A"})

	a := Toggle(s, "A", false)
	assert.Equal(t, Reset{}, a, "second click on the open article closes it")

	s = Reduce(s, a)
	assert.Equal(t, Closed, s.Width(PanelArticle))
	assert.Equal(t, Third, s.Width(PanelHome))
}

func TestToggleDifferentArticleSwaps(t *testing.T) {
	s := Reduce(DefaultState(), OpenArticle{Title: "A"})
	assert.Equal(t, ChangeArticle{Title: "B"}, Toggle(s, "B", false))
}

func TestPanelClickArticle(t *testing.T) {
	s := Reduce(DefaultState(), OpenArticle{Title: "A"})
	assert.Equal(t, FullArticle{}, PanelClick(s, PanelArticle))

	s = Reduce(s, FullArticle{})
	assert.Equal(t, OpenArticle{Title: "A"}, PanelClick(s, PanelArticle), "full reverts to expanded")

	s = Reduce(DefaultState(), OpenArticleMobile{Title: "A"})
	assert.Equal(t, Reset{}, PanelClick(s, PanelArticle))

	assert.Nil(t, PanelClick(DefaultState(), PanelArticle))
}

func TestPanelClickFullPanelReverts(t *testing.T) {
	for _, p := range []Panel{PanelHome, PanelShop, PanelAbout} {
		s := Reduce(DefaultState(), OpenPanel{Target: p})
		assert.Equal(t, Reset{}, PanelClick(s, p), "clicking full %s returns to default", p)
	}
}

func TestPanelClickThirdOpensFull(t *testing.T) {
	for _, p := range []Panel{PanelHome, PanelShop, PanelAbout} {
		assert.Equal(t, OpenPanel{Target: p}, PanelClick(DefaultState(), p))
	}
}

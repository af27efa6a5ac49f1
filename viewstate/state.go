// Package viewstate models the four-panel layout of the public site as a
// pure state machine: which panel has focus, what the article panel is
// showing, and how that maps to per-panel width modes and to the
// view/article query parameters.
//
// The package has no side effects. Handlers reduce actions into new
// states and are responsible for writing the encoded query back to the
// browser URL.
package viewstate

// Panel names one of the four layout regions.
type Panel string

const (
	PanelHome    Panel = "home"
	PanelArticle Panel = "article"
	PanelShop    Panel = "shop"
	PanelAbout   Panel = "about"
)

// Panels lists all panels in display order.
var Panels = []Panel{PanelHome, PanelArticle, PanelShop, PanelAbout}

// WidthMode is the named size state of a panel.
type WidthMode string

const (
	Closed     WidthMode = "closed"
	Third      WidthMode = "third"
	Expanded   WidthMode = "expanded"
	Full       WidthMode = "full"
	FullMobile WidthMode = "fullMobile"
)

// Focus is the single discriminant of the layout. At most one panel can
// hold focus, so mutual exclusion is structural rather than re-checked in
// every transition.
type Focus int

const (
	// FocusNone is the resting layout: home, shop and about at a third
	// each, article closed.
	FocusNone Focus = iota
	FocusArticle
	FocusArticleFull
	FocusArticleMobile
	FocusHome
	FocusShop
	FocusAbout
)

// State is the complete layout state. Selected carries the title of the
// article loaded into the article panel; it survives closing the panel so
// that reopening shows the same article.
type State struct {
	Focus    Focus
	Selected string
}

// DefaultState returns the resting layout with no article selected.
func DefaultState() State {
	return State{Focus: FocusNone}
}

// widths is the static per-panel width lookup for each focus value.
var widths = map[Focus]map[Panel]WidthMode{
	FocusNone:          {PanelHome: Third, PanelArticle: Closed, PanelShop: Third, PanelAbout: Third},
	FocusArticle:       {PanelHome: Third, PanelArticle: Expanded, PanelShop: Closed, PanelAbout: Closed},
	FocusArticleFull:   {PanelHome: Closed, PanelArticle: Full, PanelShop: Closed, PanelAbout: Closed},
	FocusArticleMobile: {PanelHome: Closed, PanelArticle: FullMobile, PanelShop: Closed, PanelAbout: Closed},
	FocusHome:          {PanelHome: Full, PanelArticle: Closed, PanelShop: Closed, PanelAbout: Closed},
	FocusShop:          {PanelHome: Closed, PanelArticle: Closed, PanelShop: Full, PanelAbout: Closed},
	FocusAbout:         {PanelHome: Closed, PanelArticle: Closed, PanelShop: Closed, PanelAbout: Full},
}

// Width returns the width mode of the given panel under this state.
func (s State) Width(p Panel) WidthMode {
	if m, ok := widths[s.Focus]; ok {
		return m[p]
	}
	return widths[FocusNone][p]
}

// ArticleOpen reports whether the article panel is visible.
func (s State) ArticleOpen() bool {
	switch s.Focus {
	case FocusArticle, FocusArticleFull, FocusArticleMobile:
		return true
	}
	return false
}

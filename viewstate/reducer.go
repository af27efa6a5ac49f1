package viewstate

// Reduce computes the next layout state. It is pure and total: unknown or
// inapplicable actions return the current state unchanged rather than
// erroring.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Reset:
		return State{Focus: FocusNone, Selected: s.Selected}
	case OpenArticle:
		return State{Focus: FocusArticle, Selected: a.Title}
	case OpenArticleMobile:
		return State{Focus: FocusArticleMobile, Selected: a.Title}
	case ChangeArticle:
		// Width stays as-is; only the selection moves. With the panel
		// closed there is nothing to re-render, so just carry the new
		// reference.
		return State{Focus: s.Focus, Selected: a.Title}
	case FullArticle:
		if s.Focus != FocusArticle {
			return s
		}
		return State{Focus: FocusArticleFull, Selected: s.Selected}
	case OpenPanel:
		switch a.Target {
		case PanelHome:
			return State{Focus: FocusHome, Selected: s.Selected}
		case PanelShop:
			return State{Focus: FocusShop, Selected: s.Selected}
		case PanelAbout:
			return State{Focus: FocusAbout, Selected: s.Selected}
		}
		return s
	}
	return s
}

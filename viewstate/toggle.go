package viewstate

// Toggle decides what an article-link click means given the current
// layout. Clicking the article already on screen collapses the panel;
// clicking a different one swaps it in place; with the panel closed the
// click opens it, at mobile width when mobile is set.
func Toggle(s State, title string, mobile bool) Action {
	if s.ArticleOpen() {
		if s.Selected == title {
			return Reset{}
		}
		return ChangeArticle{Title: title}
	}
	if mobile {
		return OpenArticleMobile{Title: title}
	}
	return OpenArticle{Title: title}
}

// PanelClick decides what a click on a panel surface means. A nil result
// means the click dispatches nothing.
func PanelClick(s State, p Panel) Action {
	if p == PanelArticle {
		switch s.Focus {
		case FocusArticle:
			return FullArticle{}
		case FocusArticleFull:
			return OpenArticle{Title: s.Selected}
		case FocusArticleMobile:
			return Reset{}
		}
		return nil
	}
	if s.Width(p) == Full {
		return Reset{}
	}
	return OpenPanel{Target: p}
}

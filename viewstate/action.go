package viewstate

// Action is the closed set of layout transitions. Each variant carries
// exactly the payload it needs, so there is no overloaded nullable field
// whose meaning shifts per action type.
type Action interface {
	isAction()
}

// Reset returns the layout to the resting all-thirds state. The article
// selection is preserved, only the panel closes.
type Reset struct{}

// OpenArticle opens the article panel at expanded width showing Title.
// Dispatched on a full article panel it reverts the panel to expanded.
type OpenArticle struct {
	Title string
}

// OpenArticleMobile opens the article panel at fullMobile width showing
// Title. Used instead of OpenArticle on mobile viewports.
type OpenArticleMobile struct {
	Title string
}

// ChangeArticle swaps the shown article without changing the panel width.
type ChangeArticle struct {
	Title string
}

// FullArticle grows an expanded article panel to full width.
type FullArticle struct{}

// OpenPanel gives Target (home, shop or about) full width, closing
// everything else. The article selection is preserved.
type OpenPanel struct {
	Target Panel
}

func (Reset) isAction()             {}
func (OpenArticle) isAction()       {}
func (OpenArticleMobile) isAction() {}
func (ChangeArticle) isAction()     {}
func (FullArticle) isAction()       {}
func (OpenPanel) isAction()         {}

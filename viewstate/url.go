package viewstate

import "net/url"

// Query parameter names shared with the browser.
const (
	paramView    = "view"
	paramArticle = "article"
)

// EncodeQuery serializes the state to the view/article query parameters.
// The resting state encodes to nothing, so the default URL stays clean.
func EncodeQuery(s State) url.Values {
	v := url.Values{}
	if s.ArticleOpen() && s.Selected != "" {
		v.Set(paramView, string(s.Width(PanelArticle)))
		v.Set(paramArticle, s.Selected)
		return v
	}
	switch s.Focus {
	case FocusShop:
		v.Set(paramView, string(PanelShop))
	case FocusAbout:
		v.Set(paramView, string(PanelAbout))
	case FocusHome:
		v.Set(paramView, string(PanelHome))
	}
	return v
}

// StateFromQuery reconstructs a state from the query parameters, used
// once when a page is first requested. An article view with no article
// parameter yields an open panel with an empty selection that the caller
// hydrates asynchronously.
func StateFromQuery(v url.Values) State {
	switch WidthMode(v.Get(paramView)) {
	case Expanded:
		return State{Focus: FocusArticle, Selected: v.Get(paramArticle)}
	case Full:
		return State{Focus: FocusArticleFull, Selected: v.Get(paramArticle)}
	case FullMobile:
		return State{Focus: FocusArticleMobile, Selected: v.Get(paramArticle)}
	}
	switch Panel(v.Get(paramView)) {
	case PanelShop:
		return State{Focus: FocusShop}
	case PanelAbout:
		return State{Focus: FocusAbout}
	case PanelHome:
		return State{Focus: FocusHome}
	}
	return DefaultState()
}

package collective

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/activechapter/collective/views"
	"github.com/activechapter/collective/viewstate"
)

func (a *App) handleHome(c echo.Context) error {
	state := stateFromRequest(c)
	filters := selectionFromQuery(c.QueryParams())
	data, err := a.buildPageData(c, state, filters)
	if err != nil {
		return err
	}
	return Render(c, views.Page(data))
}

// handleDispatch is the layout state machine's server loop: the client
// posts what was clicked, the current state comes from the URL it was
// clicked on, and the reply is the re-rendered panel region plus a
// replaced history entry.
func (a *App) handleDispatch(c echo.Context) error {
	current, filters := stateFromCurrentURL(c)

	var action viewstate.Action
	switch c.FormValue("kind") {
	case "article":
		title := c.FormValue("title")
		if title != "" {
			mobile := c.FormValue("mobile") == "1"
			action = viewstate.Toggle(current, title, mobile)
		}
	case "panel":
		p := viewstate.Panel(c.FormValue("panel"))
		switch p {
		case viewstate.PanelHome, viewstate.PanelArticle, viewstate.PanelShop, viewstate.PanelAbout:
			action = viewstate.PanelClick(current, p)
		}
	}

	next := current
	if action != nil {
		next = viewstate.Reduce(current, action)
	}

	replaceURL(c, next)
	data, err := a.buildPageData(c, next, filters)
	if err != nil {
		return err
	}
	return Render(c, views.PanelsPartial(data))
}

// stateFromCurrentURL reconstructs layout state and filters from the URL
// the HTMX request was made on.
func stateFromCurrentURL(c echo.Context) (viewstate.State, Selection) {
	raw := c.Request().Header.Get("HX-Current-URL")
	if raw == "" {
		return stateFromRequest(c), selectionFromQuery(c.QueryParams())
	}
	u, err := url.Parse(raw)
	if err != nil {
		return viewstate.DefaultState(), Selection{}
	}
	q := u.Query()
	return viewstate.StateFromQuery(q), selectionFromQuery(q)
}

func selectionFromQuery(q url.Values) Selection {
	return Selection{
		Authors:  FilterEmpty(q["author"]),
		Journals: FilterEmpty(q["journal"]),
		Mediums:  FilterEmpty(q["medium"]),
		Tags:     FilterEmpty(q["tag"]),
	}
}

// buildPageData assembles everything one page render needs: the filtered
// listing, the taxonomy, the selected article if the state names one, and
// the singleton blobs. The selected-article lookup runs under the request
// context, so a client that navigates away cancels it.
func (a *App) buildPageData(c echo.Context, state viewstate.State, filters Selection) (views.PageData, error) {
	ctx := c.Request().Context()

	summaries, err := a.Repo.List(ctx)
	if err != nil {
		return views.PageData{}, err
	}
	taxonomy, err := a.Repo.Taxonomy(ctx)
	if err != nil {
		return views.PageData{}, err
	}
	filtered := FilterArticles(summaries, filters)

	var current *views.Article
	if state.ArticleOpen() && state.Selected != "" {
		matches, err := a.Repo.GetByTitle(ctx, state.Selected)
		if err != nil {
			return views.PageData{}, err
		}
		if len(matches) > 0 {
			picked := matches[0]
			for _, m := range matches {
				if strings.EqualFold(m.Title, state.Selected) {
					picked = m
					break
				}
			}
			v := viewArticle(picked.ArticleSummary)
			v.Content = picked.Content
			current = &v
		}
	}

	data := views.PageData{
		Site: views.SiteConfig{
			Name:        a.Config.Name,
			URL:         a.Config.URL,
			Description: a.Config.Description,
			ShopURL:     a.Config.ShopURL,
		},
		State: state,
		Filters: views.Filters{
			Authors:  filters.Authors,
			Journals: filters.Journals,
			Mediums:  filters.Mediums,
			Tags:     filters.Tags,
		},
		Taxonomy: viewTaxonomy(taxonomy),
		Articles: viewSummaries(filtered),
		Current:  current,
		About:    a.singletonBlob(AboutContentKey),
		Popup:    a.singletonBlob(PopupContentKey),
	}
	return data, nil
}

// singletonBlob loads one of the fixed-key content blobs. Absence is
// normal; any other failure is logged and renders as empty.
func (a *App) singletonBlob(key string) string {
	data, err := a.Blobs.Get(key)
	if err != nil {
		if err != ErrNotFound {
			a.Log.Warn("load content blob", zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	return string(data)
}

func viewArticle(s ArticleSummary) views.Article {
	return views.Article{
		ID:         s.ID,
		Title:      s.Title,
		Author:     s.Author,
		Journal:    s.Journal,
		Medium:     s.Medium,
		Date:       s.PublishDate.Format("2006-01-02"),
		Tags:       s.Tags,
		CoverImage: s.CoverImage,
	}
}

func viewSummaries(summaries []ArticleSummary) []views.Article {
	out := make([]views.Article, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, viewArticle(s))
	}
	return out
}

func viewTaxonomy(t Taxonomy) views.Taxonomy {
	conv := func(items []MetadataItem) []views.MetadataItem {
		out := make([]views.MetadataItem, 0, len(items))
		for _, item := range items {
			out = append(out, views.MetadataItem{Label: item.Label, Value: item.Value})
		}
		return out
	}
	return views.Taxonomy{
		Authors:  conv(t.Authors),
		Journals: conv(t.Journals),
		Mediums:  conv(t.Mediums),
		Tags:     conv(t.Tags),
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	summaries, err := a.Repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, summaries)
}

func (a *App) handleFeed(c echo.Context) error {
	summaries, err := a.Repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, summaries)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, "User-agent: *\nDisallow: /admin/\nSitemap: "+a.Config.URL+"/sitemap.xml\n")
}

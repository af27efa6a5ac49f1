package collective

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// listCacheHeader lets a fronting CDN hold the listing for five minutes
// and serve stale for ten while revalidating.
const listCacheHeader = "s-maxage=300, stale-while-revalidate=600"

func (a *App) handleAPIArticleList(c echo.Context) error {
	summaries, err := a.Repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	if summaries == nil {
		summaries = []ArticleSummary{}
	}
	c.Response().Header().Set("Cache-Control", listCacheHeader)
	return c.JSON(http.StatusOK, summaries)
}

// handleAPIArticleByTitle answers the reader panel's hydration fetch: all
// articles whose title contains the path segment, bodies included, under
// an "article" envelope.
func (a *App) handleAPIArticleByTitle(c echo.Context) error {
	title, err := url.PathUnescape(c.Param("title"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad title")
	}
	articles, err := a.Repo.GetByTitle(c.Request().Context(), title)
	if err != nil {
		return err
	}
	if articles == nil {
		articles = []Article{}
	}
	c.Response().Header().Set("Cache-Control", listCacheHeader)
	return c.JSON(http.StatusOK, map[string][]Article{"article": articles})
}

func (a *App) handleAPIArticleCreate(c echo.Context) error {
	var article Article
	if err := c.Bind(&article); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad article payload")
	}
	article.Tags = FilterEmpty(article.Tags)
	if errs := ValidateArticle(article); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string][]ValidationError{"errors": errs})
	}
	id, err := a.Repo.Create(c.Request().Context(), article)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

func (a *App) handleAPIArticleUpdate(c echo.Context) error {
	var article Article
	if err := c.Bind(&article); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad article payload")
	}
	article.ID = c.Param("id")
	article.Tags = FilterEmpty(article.Tags)
	if errs := ValidateArticle(article); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string][]ValidationError{"errors": errs})
	}
	if err := a.Repo.Update(c.Request().Context(), article); err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "article not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (a *App) handleAPIArticleDelete(c echo.Context) error {
	if err := a.Repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "article not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (a *App) handleAPIMetadata(c echo.Context) error {
	taxonomy, err := a.Repo.Taxonomy(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", listCacheHeader)
	return c.JSON(http.StatusOK, taxonomy)
}

type metadataRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

func (a *App) handleAPIMetadataAdd(c echo.Context) error {
	var req metadataRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad metadata payload")
	}
	if err := a.Repo.AddTaxonomyItem(c.Request().Context(), req.Type, req.Name); err != nil {
		if errors.Is(err, ErrInvalidTaxonomy) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown metadata type")
		}
		return err
	}
	return c.JSON(http.StatusCreated, map[string]bool{"success": true})
}

type contentPayload struct {
	Content string `json:"content"`
}

// singleton-blob endpoints share one handler pair parameterized by key.

func (a *App) handleAPIContentGet(key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, contentPayload{Content: a.singletonBlob(key)})
	}
}

func (a *App) handleAPIContentSet(key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req contentPayload
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "bad content payload")
		}
		if err := a.Blobs.Put(key, []byte(req.Content)); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}

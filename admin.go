package collective

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/activechapter/collective/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.limiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.limiter.Record(ip)
	return Render(c, views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	summaries, err := a.Repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	site := views.SiteConfig{Name: a.Config.Name, URL: a.Config.URL}
	return Render(c, views.AdminDashboard(site, viewSummaries(summaries), msg, CsrfToken(c)))
}

// handleAdminEditor serves the article form, blank for /new/ and
// pre-filled for an existing id.
func (a *App) handleAdminEditor(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	taxonomy, err := a.Repo.Taxonomy(c.Request().Context())
	if err != nil {
		return err
	}

	var article views.Article
	if id := c.Param("id"); id != "new" {
		found, err := a.Repo.GetByID(c.Request().Context(), id)
		if err != nil {
			if err == ErrNotFound {
				return RenderStatus(c, http.StatusNotFound, views.NotFound())
			}
			return err
		}
		article = viewArticle(found.ArticleSummary)
		article.Content = found.Content
	}
	return Render(c, views.AdminEditor(article, viewTaxonomy(taxonomy), nil, CsrfToken(c)))
}

// handleAdminSave validates the submitted form and creates or updates the
// article. Validation failure re-renders the form with the author's input
// intact; nothing is written.
func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}

	article := Article{
		ArticleSummary: ArticleSummary{
			ID:         strings.TrimSpace(c.FormValue("id")),
			Title:      strings.TrimSpace(c.FormValue("title")),
			Author:     strings.TrimSpace(c.FormValue("author")),
			Journal:    strings.TrimSpace(c.FormValue("journal")),
			Medium:     strings.TrimSpace(c.FormValue("medium")),
			Tags:       SplitTags(c.FormValue("tags")),
			CoverImage: strings.TrimSpace(c.FormValue("coverImage")),
		},
		Content: c.FormValue("content"),
	}

	errs := ValidateArticle(article)
	date := strings.TrimSpace(c.FormValue("date"))
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			errs = append(errs, ValidationError{Field: "date", Message: "Invalid date. Use YYYY-MM-DD."})
		} else {
			article.PublishDate = parsed.UTC()
		}
	}

	if len(errs) > 0 {
		taxonomy, terr := a.Repo.Taxonomy(c.Request().Context())
		if terr != nil {
			return terr
		}
		form := viewArticle(article.ArticleSummary)
		form.Date = date
		form.Content = article.Content
		fieldErrs := make([]views.FieldError, 0, len(errs))
		for _, e := range errs {
			fieldErrs = append(fieldErrs, views.FieldError{Field: e.Field, Message: e.Message})
		}
		return Render(c, views.AdminEditor(form, viewTaxonomy(taxonomy), fieldErrs, CsrfToken(c)))
	}

	if article.ID == "" {
		if _, err := a.Repo.Create(c.Request().Context(), article); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=created")
	}
	if err := a.Repo.Update(c.Request().Context(), article); err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, views.NotFound())
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?msg=saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return a.renderAdminDashboard(c, "deleted")
}

// handleAdminContent serves the about-page and popup editors, which write
// straight to the singleton blobs.
func (a *App) handleAdminContent(heading, action, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.Redirect(http.StatusSeeOther, "/admin/")
		}
		content := a.singletonBlob(key)
		return Render(c, views.AdminContent(heading, action, content, c.QueryParam("msg"), CsrfToken(c)))
	}
}

func (a *App) handleAdminContentSave(redirect, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.Redirect(http.StatusSeeOther, "/admin/")
		}
		if err := a.Blobs.Put(key, []byte(c.FormValue("content"))); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, redirect+"?msg=saved")
	}
}

func (a *App) handleAdminImages(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	images, err := a.Store.ListImages()
	if err != nil {
		return err
	}
	out := make([]views.Image, 0, len(images))
	for _, img := range images {
		out = append(out, views.Image{
			Key:          img.Key,
			OriginalName: img.OriginalName,
			Width:        img.Width,
			Height:       img.Height,
			Size:         img.Size,
			UploadedAt:   img.UploadedAt,
		})
	}
	return Render(c, views.AdminImages(out, CsrfToken(c)))
}

func (a *App) handleAdminImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if _, err := a.storeUploadedImage(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/images/")
}

func (a *App) handleAdminImageDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}
	return a.handleImageDelete(c)
}

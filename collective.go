package collective

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/activechapter/collective/views"
)

// App is the central application. It wires together the stores, the
// cache, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Blobs  *BlobStore
	Cache  *summaryCache
	Repo   *Repository
	Log    *zap.Logger

	limiter      *attemptLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: cfg.StaticDir,
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the stores, cache, middleware and routes, then runs
// the server until it shuts down.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("collective: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("collective: SessionSecret is required")
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("collective: init logger: %w", err)
	}
	a.Log = log

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("collective: init store: %w", err)
	}
	a.Store = store

	blobs, err := NewBlobStore(a.Config.BlobDir)
	if err != nil {
		return fmt.Errorf("collective: init blob store: %w", err)
	}
	a.Blobs = blobs

	a.Cache = newSummaryCache(a.Store, a.Config.ListCacheTTL)
	a.Repo = NewRepository(a.Store, a.Blobs, a.Cache, a.Log)
	a.limiter = newAttemptLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.Log.Info("listening", zap.String("addr", a.Config.Addr))
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded stock assets served under /public/, falling through to the
	// site's own static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	for _, name := range []string{"panels.js", "dirty.js"} {
		e.GET("/public/"+name, echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	}
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public page and the layout dispatch loop.
	e.GET("/", a.handleHome)
	e.POST("/view/", a.handleDispatch)

	// JSON API. Reads are open; mutations require the shared Basic pair.
	// The trailing-slash redirect skips /api/ so that request bodies
	// survive, which means both spellings are registered directly.
	api := e.Group("/api")
	apiRoute := func(method, path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
		api.Add(method, path, h, m...)
		api.Add(method, path+"/", h, m...)
	}
	apiRoute(http.MethodGet, "/articles", a.handleAPIArticleList)
	apiRoute(http.MethodGet, "/articles/list", a.handleAPIArticleList)
	apiRoute(http.MethodGet, "/articles/title/:title", a.handleAPIArticleByTitle)
	apiRoute(http.MethodGet, "/metadata", a.handleAPIMetadata)
	apiRoute(http.MethodGet, "/about", a.handleAPIContentGet(AboutContentKey))
	apiRoute(http.MethodGet, "/popup", a.handleAPIContentGet(PopupContentKey))
	apiRoute(http.MethodGet, "/images", a.handleImageList)
	apiRoute(http.MethodGet, "/images/:id", a.handleImageGet)

	auth := a.basicAuth()
	apiRoute(http.MethodPost, "/articles", a.handleAPIArticleCreate, auth)
	apiRoute(http.MethodPut, "/articles/:id", a.handleAPIArticleUpdate, auth)
	apiRoute(http.MethodDelete, "/articles/:id", a.handleAPIArticleDelete, auth)
	apiRoute(http.MethodPost, "/metadata", a.handleAPIMetadataAdd, auth)
	apiRoute(http.MethodPost, "/about", a.handleAPIContentSet(AboutContentKey), auth)
	apiRoute(http.MethodPost, "/popup", a.handleAPIContentSet(PopupContentKey), auth)
	apiRoute(http.MethodPut, "/images/upload", a.handleImageUpload, auth)
	apiRoute(http.MethodDelete, "/images/:id", a.handleImageDelete, auth)

	// Admin HTML UI, session-gated.
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/article/:id/", a.handleAdminEditor)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/article/:id/", a.handleAdminDelete)
	e.GET("/admin/about/", a.handleAdminContent("About page", "/admin/about/", AboutContentKey))
	e.POST("/admin/about/", a.handleAdminContentSave("/admin/about/", AboutContentKey))
	e.GET("/admin/popup/", a.handleAdminContent("Popup", "/admin/popup/", PopupContentKey))
	e.POST("/admin/popup/", a.handleAdminContentSave("/admin/popup/", PopupContentKey))
	e.GET("/admin/images/", a.handleAdminImages)
	e.POST("/admin/images/upload/", a.handleAdminImageUpload)
	e.DELETE("/admin/images/:id/", a.handleAdminImageDelete)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if err == ErrNotFound {
		code = http.StatusNotFound
	}

	if isAPIRequest(c) {
		msg := http.StatusText(code)
		if ok {
			if s, isString := he.Message.(string); isString {
				msg = s
			}
		}
		if code >= 500 {
			a.Log.Error("api error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
			msg = http.StatusText(code)
		}
		_ = c.JSON(code, map[string]string{"error": msg})
		return
	}

	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, views.NotFound())
	case code >= 500:
		a.Log.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		_ = RenderStatus(c, code, views.ServerError())
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}

func isAPIRequest(c echo.Context) bool {
	path := c.Request().URL.Path
	return len(path) >= 5 && path[:5] == "/api/"
}

// Close cleans up resources. Call when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	return nil
}

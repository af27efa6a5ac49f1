package collective

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/activechapter/collective/viewstate"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// replaceURL tells the HTMX client to overwrite the current history entry
// with the URL encoding the given layout state. Navigation within the
// panels never grows the history stack.
func replaceURL(c echo.Context, s viewstate.State) {
	q := viewstate.EncodeQuery(s)
	target := "/"
	if enc := q.Encode(); enc != "" {
		target = "/?" + enc
	}
	c.Response().Header().Set("HX-Replace-Url", target)
}

// stateFromRequest reconstructs the layout state from the request URL.
func stateFromRequest(c echo.Context) viewstate.State {
	values, err := url.ParseQuery(c.Request().URL.RawQuery)
	if err != nil {
		return viewstate.DefaultState()
	}
	return viewstate.StateFromQuery(values)
}

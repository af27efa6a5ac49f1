package collective

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// basicAuth guards mutating API endpoints with the single shared
// credential pair. There is no per-user identity: the comparison is a
// constant-time check of both parts against the configured pair, and
// failed attempts count against the per-IP limiter shared with the admin
// login form.
func (a *App) basicAuth() echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(user, pass string, c echo.Context) (bool, error) {
			if !a.limiter.Check(c.RealIP()) {
				return false, echo.NewHTTPError(http.StatusTooManyRequests, "Too many attempts. Try again later.")
			}
			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.Config.AdminUser))
			passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword))
			if userOK&passOK == 1 {
				return true, nil
			}
			a.limiter.Record(c.RealIP())
			return false, nil
		},
	})
}

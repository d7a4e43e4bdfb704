package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/air-gases/cacheman"
	"github.com/aofei/air"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/air-examples/composer/catalog"
	"github.com/air-examples/composer/form"
	"github.com/air-examples/composer/markdown"
	"github.com/air-examples/composer/submit"
)

const (
	sessionCookie  = "composer_session"
	usernameCookie = "username"
)

var (
	getHeadMethods = []string{http.MethodGet, http.MethodHead}

	hourlyCachemanGas = cacheman.Gas(cacheman.GasConfig{
		Public:  true,
		MaxAge:  3600,
		SMaxAge: -1,
	})
)

// Composer serves the post composer page and its actions.
type Composer struct {
	Store    *form.Store
	Catalog  *catalog.Source
	Renderer markdown.Renderer
	Client   *submit.Client
	Style    string
}

// Register adds the composer routes and the error handler to a.
func Register(a *air.Air, c *Composer) {
	a.FILES("/assets", a.CofferAssetRoot, hourlyCachemanGas)

	a.BATCH(getHeadMethods, "/", indexPageHandler)
	a.BATCH(getHeadMethods, "/posts/submit", c.submitPageHandler)
	a.POST("/posts/submit", c.submitHandler)
	a.POST("/posts/submit/fields/:Field", c.fieldHandler)
	a.BATCH(getHeadMethods, "/posts/submit/preview", c.previewHandler)
	a.GET("/posts/submit/preview.css", c.stylesheetHandler, hourlyCachemanGas)

	a.GET("/metrics", air.WrapHTTPHandler(promhttp.Handler()))

	a.ErrorHandler = errorHandler(a)
}

func indexPageHandler(req *air.Request, res *air.Response) error {
	return res.Redirect("/posts/submit")
}

// httpError is an error with the status and message the client sees.
type httpError struct {
	Status  int
	Message string
}

func (e *httpError) Error() string {
	return e.Message
}

func errorHandler(a *air.Air) func(error, *air.Request, *air.Response) {
	return func(err error, req *air.Request, res *air.Response) {
		if res.Written {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var he *httpError
		if errors.As(err, &he) {
			status, message = he.Status, he.Message
		} else if res.Status >= http.StatusBadRequest {
			status, message = res.Status, err.Error()
		} else {
			log.Error().Err(err).
				Str("app_name", a.AppName).
				Str("path", req.Path).
				Msg("unexpected handler error")
			if a.DebugMode {
				message = err.Error()
			}
		}

		res.Status = status
		res.WriteJSON(map[string]interface{}{
			"message": message,
		})
	}
}

func sessionID(req *air.Request) string {
	if ck := req.Cookie(sessionCookie); ck != nil {
		return ck.Value
	}

	return ""
}

// existingSession returns the session named by the request cookie, or nil.
// Read-only routes use it so cookieless clients leave no sessions behind.
func (c *Composer) existingSession(req *air.Request) *form.Session {
	s, ok := c.Store.Lookup(sessionID(req))
	if !ok {
		return nil
	}

	return s
}

// session returns the request's session, creating it and setting the cookie
// when the request has none.
func (c *Composer) session(req *air.Request, res *air.Response) *form.Session {
	s, created := c.Store.Session(sessionID(req))
	if created {
		res.SetCookie(&http.Cookie{
			Name:     sessionCookie,
			Value:    s.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return s
}

// username is the name the browser keeps for the author, if any.
func username(req *air.Request) string {
	ck := req.Cookie(usernameCookie)
	if ck == nil {
		return ""
	}

	if v, err := url.QueryUnescape(ck.Value); err == nil {
		return v
	}

	return ck.Value
}

func locale(req *air.Request) string {
	return req.Header.Get("Accept-Language")
}

func paramString(req *air.Request, name string) string {
	if p := req.Param(name); p != nil {
		if v := p.Value(); v != nil {
			return v.String()
		}
	}

	return ""
}

func paramStrings(req *air.Request, name string) []string {
	p := req.Param(name)
	if p == nil {
		return nil
	}

	ss := make([]string, 0, len(p.Values))
	for _, v := range p.Values {
		ss = append(ss, v.String())
	}

	return ss
}

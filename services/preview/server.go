package previewsvc

import (
	"context"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/learnx/learnx/core"
	"github.com/learnx/learnx/core/content"
)

type (
	// Server hands fetched file bytes to the system viewer over loopback
	// HTTP, standing in for the blob URLs a browser would mint. Entries are
	// tokenized so a preview URL is unguessable and single-purpose.
	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
		// Serve registers a payload and returns its preview URL.
		Serve(fc content.FileContent) string
		// Drop forgets a previously served payload.
		Drop(url string)
	}

	server struct {
		addr string
		app  *echo.Echo

		mu      sync.Mutex
		entries map[string]content.FileContent
		baseURL string
	}
)

var _ Server = (*server)(nil)

func NewServer(conf core.PreviewConfig) Server {
	s := &server{
		addr:    conf.Addr,
		app:     echo.New(),
		entries: make(map[string]content.FileContent),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.GET("/preview/:token", s.preview)
}

// Start binds the listener and serves in the background; the bound address is
// known once Start returns, so Serve can mint full URLs.
func (s *server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrap(err, "binding preview listener")
	}
	s.app.Listener = ln
	s.mu.Lock()
	s.baseURL = "http://" + ln.Addr().String()
	s.mu.Unlock()

	go func() {
		if err := s.app.Start(""); err != nil && err != http.ErrServerClosed {
			s.app.Logger.Error(err)
		}
	}()
	return nil
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) Serve(fc content.FileContent) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = fc
	return s.baseURL + "/preview/" + token
}

func (s *server) Drop(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token := range s.entries {
		if s.baseURL+"/preview/"+token == url {
			delete(s.entries, token)
			return
		}
	}
}

func (s *server) preview(ctx echo.Context) error {
	s.mu.Lock()
	fc, ok := s.entries[ctx.Param("token")]
	s.mu.Unlock()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	contentType := fc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if fc.Filename != "" {
		ctx.Response().Header().Set("Content-Disposition", `inline; filename="`+fc.Filename+`"`)
	}
	return ctx.Blob(http.StatusOK, contentType, fc.Data)
}

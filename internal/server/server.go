package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"plumbfam/internal/catalog"
	"plumbfam/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger     *logrus.Logger
	config     *types.Config
	controller *catalog.Controller
	subscriber catalog.Subscriber
	templates  *template.Template

	cookie *securecookie.SecureCookie

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	controller *catalog.Controller,
	subscriber catalog.Subscriber,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := cookieKey(config.CookieHashKey, 32)
	if err != nil {
		return nil, fmt.Errorf("cookie hash key: %w", err)
	}

	blockKey, err := cookieKey(config.CookieBlockKey, 32)
	if err != nil {
		return nil, fmt.Errorf("cookie block key: %w", err)
	}

	s := &Service{
		logger:     logger,
		config:     config,
		controller: controller,
		subscriber: subscriber,
		cookie:     securecookie.New(hashKey, blockKey),
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/upload", s.handleGetUpload, http.MethodGet)
	r.HandleFunc("/families", s.handleCreateFamily, http.MethodPost)
	r.HandleFunc("/families/:id/delete", s.handleDeleteFamily, http.MethodPost)
	r.HandleFunc("/events", s.handleEvents, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

// cookieKey decodes a configured base64 key, or generates a random key of
// the given length when none is configured. Generated keys rotate per
// process, which only shortens the life of in-flight flash cookies.
func cookieKey(encoded string, length int) ([]byte, error) {
	if encoded == "" {
		key := securecookie.GenerateRandomKey(length)
		if key == nil {
			return nil, fmt.Errorf("failed to generate random key")
		}
		return key, nil
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 key: %w", err)
	}

	return key, nil
}

func loadTemplates() (*template.Template, error) {
	t := template.New("").Funcs(templateFuncs())
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Package fileserver serves captured and selected photos over HTTP so that
// native paths become displayable URLs.
package fileserver

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/camtray/internal/camera"
	"github.com/cristianoliveira/camtray/internal/format"
	"github.com/cristianoliveira/camtray/internal/gallery"
	"github.com/cristianoliveira/camtray/internal/logging"
	"github.com/cristianoliveira/camtray/internal/version"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// GalleryLoader reads the persisted gallery.
type GalleryLoader interface {
	Load(ctx context.Context) gallery.Gallery
}

// Server serves files below a fixed set of root directories.
type Server struct {
	roots   []string
	gallery GalleryLoader
	logger  logging.Logger
	router  *chi.Mux
}

// New creates a Server exposing files under roots. Empty roots are ignored.
func New(store GalleryLoader, logger logging.Logger, roots ...string) *Server {
	if logger == nil {
		logger = logging.With("component", "fileserver")
	}
	s := &Server{gallery: store, logger: logger}
	for _, root := range roots {
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			logger.Warn("ignoring file root", "root", root, "error", err)
			continue
		}
		s.roots = append(s.roots, filepath.Clean(abs))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get(camera.FileURLPrefix+"/*", s.handleFile)
	r.Get("/gallery", s.handleGallery)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("file server listening", "addr", addr, "roots", strings.Join(s.roots, ","))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("file server stopped", "addr", addr)
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", version.UserAgent())
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "*")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(param)
		if err != nil {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
		param = unescaped
	}
	path := filepath.Clean(filepath.FromSlash("/" + param))
	if !s.allowed(path) {
		s.logger.Warn("refusing file outside roots", "path", path)
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// allowed reports whether path lies inside one of the roots.
func (s *Server) allowed(path string) bool {
	for _, root := range s.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return true
	}
	return false
}

// galleryContentTypes lists the formats served by /gallery.
var galleryContentTypes = map[format.FormatterType]string{
	format.FormatterTypeJSON:  "application/json",
	format.FormatterTypeYAML:  "application/yaml",
	format.FormatterTypePlain: "text/plain; charset=utf-8",
}

// handleGallery serves the gallery as JSON, or as ?format=yaml|plain.
func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	ft := format.FormatterTypeJSON
	if name := r.URL.Query().Get("format"); name != "" {
		ft = format.FormatterType(strings.ToLower(name))
	}
	contentType, ok := galleryContentTypes[ft]
	if !ok {
		http.Error(w, "unsupported format", http.StatusBadRequest)
		return
	}

	g := gallery.Gallery{}
	if s.gallery != nil {
		g = s.gallery.Load(r.Context())
	}
	w.Header().Set("Content-Type", contentType)
	if err := format.NewFormatter(ft).FormatGallery(g, w); err != nil {
		s.logger.Error("failed to encode gallery response", "error", err, "format", string(ft))
	}
}

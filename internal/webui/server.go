// Package webui serves the HTML front end: text classification, catalog
// search, image upload and usage statistics. It is plain net/http plus
// html/template; all classification work happens in the wastesort package.
package webui

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/ecosort/wastesort"
	"github.com/ecosort/wastesort/internal/storage"
)

// defaultUserID tags records created through the web UI. There is no login;
// everyone is the guest user.
const defaultUserID = "guest"

// Server holds the web UI's collaborators.
type Server struct {
	classifier *wastesort.Config
	store      *storage.Store
	similar    *wastesort.SimilarityIndex
	logger     *slog.Logger

	maxImageBytes int64
	tmpl          *template.Template
}

// Options configures a Server.
type Options struct {
	Classifier    *wastesort.Config
	Store         *storage.Store // optional: nil disables persistence
	Logger        *slog.Logger
	MaxImageBytes int64 // upload cap, default 5MB
}

// New builds a Server. The classifier is required; a nil store just skips
// persistence.
func New(opts Options) (*Server, error) {
	if opts.Classifier == nil {
		return nil, fmt.Errorf("webui: classifier is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxImageBytes <= 0 {
		opts.MaxImageBytes = 5 * 1024 * 1024
	}

	// Handlers on concurrent requests read the classifier's catalog and
	// rules directly, so the defaults must be in place before serving.
	opts.Classifier.Finalize()

	tmpl, err := template.New("webui").Parse(pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("webui: parse templates: %w", err)
	}

	return &Server{
		classifier:    opts.Classifier,
		store:         opts.Store,
		similar:       wastesort.NewSimilarityIndex(opts.Classifier.SimilarityThreshold),
		logger:        opts.Logger,
		maxImageBytes: opts.MaxImageBytes,
		tmpl:          tmpl,
	}, nil
}

// Handler returns the routing table wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/classify", s.handleClassify)
	mux.HandleFunc("/search", s.handleSearch)
	mux.HandleFunc("/stats", s.handleStats)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/health", s.handleHealth)
	return s.withLogging(mux)
}

// NewHTTPServer wraps the handler in an http.Server with sane timeouts.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, page, data); err != nil {
		s.logger.Error("render failed", "page", page, "error", err)
	}
}

// persist stores a classification record; persistence failures are logged,
// never surfaced to the user.
func (s *Server) persist(rec storage.Record) {
	if s.store == nil {
		return
	}
	if rec.UserID == "" {
		rec.UserID = defaultUserID
	}
	if err := s.store.AddRecord(rec); err != nil {
		s.logger.Warn("persist record failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

// Package httpapi serves level generation over HTTP.
//
// Routes:
//   - GET  /health
//   - GET  /features      feature catalogue
//   - GET  /presets       registered presets
//   - POST /levels        generate (and archive) a level, returns the document
//   - GET  /levels        recent archived levels
//   - GET  /levels/{id}   archived document
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/levelforge/internal/config"
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/levelgen"
	"github.com/vovakirdan/levelforge/internal/registry"
	"github.com/vovakirdan/levelforge/internal/storage"
)

// maxBodyBytes bounds POST /levels request bodies.
const maxBodyBytes = 64 << 10

// Server bundles router, settings and the optional level archive.
type Server struct {
	r        *chi.Mux
	settings config.Settings
	store    *storage.Store
	logger   *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
// store may be nil, in which case levels are generated but not archived.
func New(settings config.Settings, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{r: chi.NewRouter(), settings: settings, store: store, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(30 * time.Second))
	s.r.Use(s.requestLog)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/features", s.handleFeatures)
	s.r.Get("/presets", s.handlePresets)
	s.r.Route("/levels", func(r chi.Router) {
		r.Post("/", s.handleGenerate)
		r.Get("/", s.handleRecent)
		r.Get("/{id}", s.handleLevel)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until SIGINT or SIGTERM.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("httpapi: %w", err)
		}
		return nil
	case <-done:
	}

	s.logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// requestLog logs each request after it completes.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

type featureInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	all := levelgen.AllFeatures()
	out := make([]featureInfo, len(all))
	for i, f := range all {
		out[i] = featureInfo{Name: f.String(), Title: f.Title()}
	}
	writeJSON(w, http.StatusOK, out)
}

type presetInfo struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Features []string `json:"features"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	list := registry.List()
	out := make([]presetInfo, len(list))
	for i, p := range list {
		names := make([]string, 0, len(p.Features.List()))
		for _, f := range p.Features.List() {
			names = append(names, f.String())
		}
		out[i] = presetInfo{ID: p.ID, Title: p.Title, Features: names}
	}
	writeJSON(w, http.StatusOK, out)
}

// GenerateRequest is the POST /levels body. Preset and Features are
// alternatives; Features wins when both are given.
type GenerateRequest struct {
	Size     int    `json:"size"`
	Features string `json:"features"`
	Preset   string `json:"preset"`
	Seed     int64  `json:"seed"`
	Header   struct {
		LevelName string `json:"level_name"`
		Author    string `json:"author"`
		Skybox    string `json:"skybox"`
	} `json:"header"`
}

// Config resolves the request against settings into a generator config.
func (req GenerateRequest) Config(settings config.Settings) (levelgen.LevelConfig, error) {
	cfg := levelgen.LevelConfig{
		Size:   req.Size,
		Header: settings.Header.Header(),
		Params: settings.Generation.Params(),
	}

	switch {
	case req.Features != "":
		flags, err := levelgen.ParseFeatures(req.Features)
		if err != nil {
			return cfg, err
		}
		cfg.Features = flags
	case req.Preset != "":
		p, err := registry.Create(req.Preset)
		if err != nil {
			return cfg, fmt.Errorf("%w: %v", levelgen.ErrInvalidConfig, err)
		}
		pc := p.Configure(req.Size)
		cfg.Size, cfg.Features = pc.Size, pc.Features
	default:
		cfg.Features = levelgen.Flags(levelgen.FeatureGoal, levelgen.FeatureSpawn)
	}

	if cfg.Size == 0 {
		cfg.Size = settings.Generation.DefaultSize
	}
	if req.Header.LevelName != "" {
		cfg.Header.LevelName = req.Header.LevelName
	}
	if req.Header.Author != "" {
		cfg.Header.Author = req.Header.Author
	}
	if req.Header.Skybox != "" {
		cfg.Header.Skybox = req.Header.Skybox
	}
	return cfg, cfg.Validate()
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cfg, err := req.Config(s.settings)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := levelgen.NewGenerator(cfg.Params.MaxAttempts, s.logger)
	res, err := gen.Generate(cfg, rand.New(rand.NewSource(seed)))
	switch {
	case errors.Is(err, levelgen.ErrGenerationFailed):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := level.Encode(res.Document)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.store != nil {
		id, err := s.store.SaveLevel(storage.LevelRecord{
			Seed:     seed,
			Size:     res.Size,
			Features: res.Features.String(),
			Attempts: res.Attempts,
			Document: data,
		})
		if err != nil {
			s.logger.Warn("could not archive level", "error", err)
		} else {
			w.Header().Set("X-Level-Id", id)
		}
	}

	w.Header().Set("X-Level-Seed", strconv.FormatInt(seed, 10))
	w.Header().Set("X-Level-Attempts", strconv.Itoa(res.Attempts))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(data)
}

type levelSummary struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	LevelName string    `json:"level_name"`
	UserName  string    `json:"user_name"`
	Size      int       `json:"size"`
	Features  string    `json:"features"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "archive unavailable")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	recs, err := s.store.RecentLevels(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]levelSummary, len(recs))
	for i, rec := range recs {
		out[i] = levelSummary{
			ID:        rec.ID,
			Seed:      rec.Seed,
			LevelName: rec.LevelName,
			UserName:  rec.UserName,
			Size:      rec.Size,
			Features:  rec.Features,
			Attempts:  rec.Attempts,
			CreatedAt: rec.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "archive unavailable")
		return
	}
	rec, err := s.store.LevelByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "level not found")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.Document)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

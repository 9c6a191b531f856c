// Package server previews catalog assets over HTTP so the web app can be
// pointed at freshly rendered sounds without writing them to disk.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/catalog"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/generate"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/metrics"
)

// Server renders assets on first request and keeps the encoded files.
type Server struct {
	runner  *generate.Runner
	logger  *zap.Logger
	started time.Time

	renders singleflight.Group
	mu      sync.RWMutex
	cache   map[string][]byte
}

type soundInfo struct {
	Name   string      `json:"name"`
	URL    string      `json:"url"`
	Layers []layerInfo `json:"layers"`
}

type layerInfo struct {
	Instrument string  `json:"instrument"`
	OffsetMs   float64 `json:"offsetMs,omitempty"`
}

type soundsResponse struct {
	SampleRate int         `json:"sampleRate"`
	Sounds     []soundInfo `json:"sounds"`
}

// New creates a server for the runner's catalog.
func New(runner *generate.Runner, logger *zap.Logger) *Server {
	return &Server{
		runner:  runner,
		logger:  logger,
		started: time.Now(),
		cache:   make(map[string][]byte),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(RequestID)
	r.Use(Logging(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Range", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Content-Length", "Content-Range"},
		MaxAge:         300,
	}))
	r.Use(chimw.GetHead)

	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/sounds", s.listSounds)
		r.Get("/sounds/{name}", s.getSound)
		r.Get("/events", s.listEvents)
	})
	return r
}

// CachedCount returns how many encoded assets are held in memory.
func (s *Server) CachedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}

// health handles GET /healthz.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"assets": len(s.runner.Catalog().Assets),
		"cached": s.CachedCount(),
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// listSounds handles GET /v1/sounds.
func (s *Server) listSounds(w http.ResponseWriter, r *http.Request) {
	cat := s.runner.Catalog()
	resp := soundsResponse{
		SampleRate: s.runner.SampleRate(),
		Sounds:     make([]soundInfo, 0, len(cat.Assets)),
	}
	for _, a := range cat.Assets {
		info := soundInfo{Name: a.Name, URL: "/v1/sounds/" + a.Name}
		for _, l := range a.Layers {
			info.Layers = append(info.Layers, layerInfo{Instrument: l.Generator.Kind(), OffsetMs: l.OffsetMs})
		}
		resp.Sounds = append(resp.Sounds, info)
	}
	writeJSON(w, http.StatusOK, resp)
}

// getSound handles GET /v1/sounds/{name}. Range requests are honored so
// audio elements can seek.
func (s *Server) getSound(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	logger := s.logger.With(zap.String("asset", name), zap.String("requestId", GetRequestID(r.Context())))

	body, err := s.encoded(name)
	if errors.Is(err, catalog.ErrUnknownAsset) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown sound: " + name})
		return
	}
	if err != nil {
		logger.Error("render sound failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, name, s.started, bytes.NewReader(body))
}

// listEvents handles GET /v1/events.
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Catalog().Manifest(s.runner.SampleRate()))
}

// encoded returns the WAV bytes for name, rendering at most once per name
// even under concurrent requests.
func (s *Server) encoded(name string) ([]byte, error) {
	s.mu.RLock()
	body, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return body, nil
	}

	v, err, _ := s.renders.Do(name, func() (any, error) {
		a, err := s.runner.Catalog().Lookup(name)
		if err != nil {
			return nil, err
		}
		start := time.Now()
		body, err := s.runner.Encode(a)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.cache[name] = body
		n := len(s.cache)
		s.mu.Unlock()
		metrics.CachedAssets.Set(float64(n))

		s.logger.Info("rendered sound",
			zap.String("asset", name),
			zap.Int("bytes", len(body)),
			zap.Duration("took", time.Since(start)),
		)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

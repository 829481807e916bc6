// Package server exposes stored ghost records over HTTP for local
// inspection: a small JSON API plus a websocket endpoint that streams
// interpolated playback poses. It is a dev tool for one machine, not ghost
// synchronization between players.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mfriis/ghostlap/internal/ghost"
)

// Server serves the ghost record API.
type Server struct {
	httpServer *http.Server
	store      *ghost.Store
	interval   float64
	log        *logrus.Logger
	mux        *http.ServeMux
}

// New creates a server over the given store. interval is the sampling period
// records were made with; ≤ 0 means the default.
func New(addr string, store *ghost.Store, interval float64, log *logrus.Logger) *Server {
	if interval <= 0 {
		interval = ghost.DefaultInterval
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		store:    store,
		interval: interval,
		log:      log,
		mux:      http.NewServeMux(),
	}
	s.routes()
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/ghosts", s.handleList)
	s.mux.HandleFunc("GET /api/ghosts/{seed}/{mode}/{tier}", s.handleGet)
	s.mux.HandleFunc("GET /ws/replay", s.handleReplay)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins serving and blocks until the server stops.
func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("ghost server listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ghostSummary is the listing entry for one stored record.
type ghostSummary struct {
	Seed        int64   `json:"seed"`
	Mode        string  `json:"mode"`
	Tier        string  `json:"tier"`
	TotalTimeMs int64   `json:"totalTimeMs"`
	BestLapMs   int64   `json:"bestLapMs"`
	Laps        int     `json:"laps"`
	Samples     int     `json:"samples"`
	RecordedAt  string  `json:"recordedAt"`
	DurationSec float64 `json:"durationSec"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	keys, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	summaries := make([]ghostSummary, 0, len(keys))
	for _, k := range keys {
		rec := s.store.Load(r.Context(), k)
		if rec == nil {
			continue
		}
		summaries = append(summaries, ghostSummary{
			Seed:        k.Seed,
			Mode:        k.Mode,
			Tier:        k.Tier,
			TotalTimeMs: rec.TotalTimeMs,
			BestLapMs:   rec.BestLapMs,
			Laps:        len(rec.LapTimes),
			Samples:     rec.SampleCount(),
			RecordedAt:  rec.RecordedAt.Format(time.RFC3339),
			DurationSec: rec.Duration(s.interval).Seconds(),
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key, ok := keyFromPath(r)
	if !ok {
		http.Error(w, "bad seed", http.StatusBadRequest)
		return
	}
	rec := s.store.Load(r.Context(), key)
	if rec == nil {
		http.Error(w, "no ghost recorded for this key", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func keyFromPath(r *http.Request) (ghost.Key, bool) {
	seed, err := strconv.ParseInt(r.PathValue("seed"), 10, 64)
	if err != nil {
		return ghost.Key{}, false
	}
	mode := strings.TrimSpace(r.PathValue("mode"))
	tier := strings.TrimSpace(r.PathValue("tier"))
	if mode == "" || tier == "" {
		return ghost.Key{}, false
	}
	return ghost.Key{Seed: seed, Mode: mode, Tier: tier}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

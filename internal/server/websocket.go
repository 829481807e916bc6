package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mfriis/ghostlap/internal/ghost"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev tool.
	},
}

// streamTick is the wall-clock period between streamed pose frames.
const streamTick = 50 * time.Millisecond

// poseFrame is one streamed playback update.
type poseFrame struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Speed    float64 `json:"speed"`
	Opacity  float64 `json:"opacity"`
	Elapsed  float64 `json:"elapsed"`
	Finished bool    `json:"finished"`
}

// handleReplay upgrades to a websocket and streams interpolated poses for
// one stored ghost until the playback finishes or the client goes away.
// Query: seed, mode, tier, and an optional speed multiplier.
func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	seed, err := strconv.ParseInt(q.Get("seed"), 10, 64)
	if err != nil {
		http.Error(w, "bad seed", http.StatusBadRequest)
		return
	}
	key := ghost.Key{Seed: seed, Mode: q.Get("mode"), Tier: q.Get("tier")}

	speed := 1.0
	if v := q.Get("speed"); v != "" {
		speed, err = strconv.ParseFloat(v, 64)
		if err != nil || speed <= 0 {
			http.Error(w, "bad speed", http.StatusBadRequest)
			return
		}
	}

	rec := s.store.Load(r.Context(), key)
	if rec == nil {
		http.Error(w, "no ghost recorded for this key", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Read loop drains control frames and signals disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	playback := ghost.NewPlayback(rec.Frames, "", s.interval)
	ticker := time.NewTicker(streamTick)
	defer ticker.Stop()

	dt := streamTick.Seconds() * speed
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			playback.Update(dt)
			frame := poseFrame{
				X:        playback.X,
				Y:        playback.Y,
				Rotation: playback.Rotation,
				Speed:    playback.Speed,
				Opacity:  playback.Opacity,
				Elapsed:  playback.Elapsed,
				Finished: playback.Finished(),
			}
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
			if playback.Finished() {
				return
			}
		}
	}
}

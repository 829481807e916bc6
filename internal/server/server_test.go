package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mfriis/ghostlap/internal/ghost"
	"github.com/mfriis/ghostlap/internal/storage"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testServer(t *testing.T) (*Server, *ghost.Store) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := ghost.NewStore(storage.NewMemoryKV(), log)
	return New(":0", store, 0.1, log), store
}

func seedRecord(t *testing.T, store *ghost.Store, key ghost.Key) *ghost.Record {
	t.Helper()
	rec := ghost.NewRecord([]float64{0, 0, 0, 0, 0, 10, 0, 1, 0, 1}, 12000, []int64{12000}, epoch)
	store.Save(context.Background(), key, rec)
	return rec
}

func TestServer_Health(t *testing.T) {
	s, _ := testServer(t)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want 200", w.Code)
	}
}

func TestServer_ListGhosts(t *testing.T) {
	s, store := testServer(t)
	seedRecord(t, store, ghost.Key{Seed: 42, Mode: "race", Tier: "turbo"})
	seedRecord(t, store, ghost.Key{Seed: 43, Mode: "race", Tier: "casual"})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ghosts", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/ghosts = %d, want 200", w.Code)
	}

	var summaries []ghostSummary
	if err := json.NewDecoder(w.Body).Decode(&summaries); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("listed %d ghosts, want 2", len(summaries))
	}
	for _, g := range summaries {
		if g.Samples != 2 || g.TotalTimeMs != 12000 {
			t.Errorf("summary = %+v, want 2 samples and 12000ms", g)
		}
	}
}

func TestServer_GetGhost(t *testing.T) {
	s, store := testServer(t)
	want := seedRecord(t, store, ghost.Key{Seed: 42, Mode: "race", Tier: "turbo"})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ghosts/42/race/turbo", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET record = %d, want 200", w.Code)
	}

	var got ghost.Record
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decoding record: %v", err)
	}
	if got.TotalTimeMs != want.TotalTimeMs || len(got.Frames) != len(want.Frames) {
		t.Errorf("record = %+v, want %+v", got, want)
	}
}

func TestServer_GetGhostMissing(t *testing.T) {
	s, _ := testServer(t)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ghosts/1/race/turbo", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("GET missing record = %d, want 404", w.Code)
	}
}

func TestServer_GetGhostBadSeed(t *testing.T) {
	s, _ := testServer(t)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ghosts/abc/race/turbo", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("GET with bad seed = %d, want 400", w.Code)
	}
}

package ghost

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/mfriis/ghostlap/internal/clock"
	"github.com/mfriis/ghostlap/internal/storage"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testStore() (*Store, *storage.MemoryKV) {
	kv := storage.NewMemoryKV()
	return NewStore(kv, quietLogger()), kv
}

func testRecord() *Record {
	return &Record{
		Frames:      []float64{1, 2, 3, 4, 5},
		TotalTimeMs: 1000,
		LapTimes:    []int64{1000},
		BestLapMs:   1000,
		RecordedAt:  epoch,
		Version:     1,
	}
}

func TestKey_String(t *testing.T) {
	k := Key{Seed: 42, Mode: "race", Tier: "turbo"}
	if got := k.String(); got != "ghostlap_42_race_turbo" {
		t.Errorf("String() = %q, want %q", got, "ghostlap_42_race_turbo")
	}
}

func TestParseKey_Roundtrip(t *testing.T) {
	k := Key{Seed: -7, Mode: "timeattack", Tier: "casual"}
	got, err := ParseKey(k.String())
	if err != nil {
		t.Fatalf("ParseKey() error = %v", err)
	}
	if got != k {
		t.Errorf("ParseKey() = %+v, want %+v", got, k)
	}
}

func TestParseKey_Malformed(t *testing.T) {
	for _, s := range []string{"", "ghostlap_x_race_turbo", "other_1_race_turbo", "ghostlap_1_race"} {
		if _, err := ParseKey(s); err == nil {
			t.Errorf("ParseKey(%q) should fail", s)
		}
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	s, _ := testStore()
	ctx := context.Background()
	key := Key{Seed: 1, Mode: "race", Tier: "turbo"}
	want := testRecord()

	s.Save(ctx, key, want)
	got := s.Load(ctx, key)

	if got == nil {
		t.Fatal("Load() = nil after Save")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loaded record differs (-want +got):\n%s", diff)
	}
}

func TestStore_LoadMissingKey(t *testing.T) {
	s, _ := testStore()
	if got := s.Load(context.Background(), Key{Seed: 99, Mode: "race", Tier: "turbo"}); got != nil {
		t.Errorf("Load() on missing key = %+v, want nil", got)
	}
}

func TestStore_LoadCorruptValue(t *testing.T) {
	s, kv := testStore()
	ctx := context.Background()
	key := Key{Seed: 2, Mode: "race", Tier: "turbo"}

	kv.Set(ctx, key.String(), []byte("{not json"))
	if got := s.Load(ctx, key); got != nil {
		t.Errorf("Load() on unparsable value = %+v, want nil", got)
	}

	// Parses as JSON but violates the frame-length invariant.
	kv.Set(ctx, key.String(), []byte(`{"frames":[1,2,3],"totalTimeMs":1,"version":1}`))
	if got := s.Load(ctx, key); got != nil {
		t.Errorf("Load() on invalid frame length = %+v, want nil", got)
	}
}

func TestStore_SaveIsLastWriteWins(t *testing.T) {
	s, _ := testStore()
	ctx := context.Background()
	key := Key{Seed: 3, Mode: "race", Tier: "turbo"}

	fast := testRecord()
	fast.TotalTimeMs = 1000
	slow := testRecord()
	slow.TotalTimeMs = 99000

	s.Save(ctx, key, fast)
	s.Save(ctx, key, slow) // slower run still replaces the record

	got := s.Load(ctx, key)
	if got == nil || got.TotalTimeMs != 99000 {
		t.Errorf("Load().TotalTimeMs = %v, want 99000 (last write wins)", got)
	}
}

func TestStore_SaveStampsMissingTimestamp(t *testing.T) {
	s, _ := testStore()
	s.WithClock(clock.NewVirtualClock(epoch))
	ctx := context.Background()
	key := Key{Seed: 8, Mode: "race", Tier: "turbo"}

	rec := testRecord()
	rec.RecordedAt = time.Time{}
	s.Save(ctx, key, rec)

	got := s.Load(ctx, key)
	if got == nil {
		t.Fatal("Load() = nil after Save")
	}
	if !got.RecordedAt.Equal(epoch) {
		t.Errorf("RecordedAt = %v, want clock time %v", got.RecordedAt, epoch)
	}
	if !rec.RecordedAt.IsZero() {
		t.Error("Save must not mutate the caller's record")
	}
}

func TestStore_SaveInvalidRecordWritesNothing(t *testing.T) {
	s, kv := testStore()
	ctx := context.Background()
	key := Key{Seed: 4, Mode: "race", Tier: "turbo"}

	bad := testRecord()
	bad.Frames = []float64{1, 2, 3} // not a multiple of 5
	s.Save(ctx, key, bad)
	s.Save(ctx, key, nil)

	if kv.Len() != 0 {
		t.Errorf("store contains %d keys after invalid saves, want 0", kv.Len())
	}
}

func TestStore_SaveFailureIsSwallowed(t *testing.T) {
	s := NewStore(failingKV{}, quietLogger())
	// Must not panic or surface the error.
	s.Save(context.Background(), Key{Seed: 5, Mode: "race", Tier: "turbo"}, testRecord())
	if got := s.Load(context.Background(), Key{Seed: 5, Mode: "race", Tier: "turbo"}); got != nil {
		t.Errorf("Load() = %+v, want nil", got)
	}
}

func TestStore_BestTimes(t *testing.T) {
	s, _ := testStore()
	ctx := context.Background()
	key := Key{Seed: 6, Mode: "race", Tier: "turbo"}

	if _, ok := s.BestTime(ctx, key); ok {
		t.Error("BestTime() on missing key should report no record")
	}

	rec := NewRecord([]float64{1, 2, 3, 4, 5}, 45000, []int64{16000, 14500, 14500}, epoch)
	s.Save(ctx, key, rec)

	if got, ok := s.BestTime(ctx, key); !ok || got != 45000 {
		t.Errorf("BestTime() = %v, %v, want 45000, true", got, ok)
	}
	if got, ok := s.BestLapTime(ctx, key); !ok || got != 14500 {
		t.Errorf("BestLapTime() = %v, %v, want 14500, true", got, ok)
	}
}

func TestStore_ClearLeavesForeignKeys(t *testing.T) {
	s, kv := testStore()
	ctx := context.Background()

	s.Save(ctx, Key{Seed: 1, Mode: "race", Tier: "turbo"}, testRecord())
	s.Save(ctx, Key{Seed: 2, Mode: "race", Tier: "casual"}, testRecord())
	kv.Set(ctx, "settings_volume", []byte("0.8")) // unrelated data, same store

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	keys, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("List() after Clear = %v, want empty", keys)
	}
	foreign, _ := kv.Get(ctx, "settings_volume")
	if string(foreign) != "0.8" {
		t.Error("Clear() must not touch keys outside the ghost namespace")
	}
}

func TestStore_List(t *testing.T) {
	s, _ := testStore()
	ctx := context.Background()

	want := []Key{
		{Seed: 10, Mode: "race", Tier: "turbo"},
		{Seed: 11, Mode: "timeattack", Tier: "casual"},
	}
	for _, k := range want {
		s.Save(ctx, k, testRecord())
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %d keys", got, len(want))
	}
	found := map[Key]bool{}
	for _, k := range got {
		found[k] = true
	}
	for _, k := range want {
		if !found[k] {
			t.Errorf("List() missing %+v", k)
		}
	}
}

// failingKV simulates a disabled or full persistence layer.
type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, errFailing
}
func (failingKV) Set(context.Context, string, []byte) error { return errFailing }
func (failingKV) Delete(context.Context, string) error      { return errFailing }
func (failingKV) Keys(context.Context, string) ([]string, error) {
	return nil, errFailing
}
func (failingKV) Close() error { return nil }

var errFailing = errors.New("storage unavailable")

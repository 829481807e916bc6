package ghost

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mfriis/ghostlap/internal/clock"
	"github.com/mfriis/ghostlap/internal/storage"
)

// Namespace prefixes every key this subsystem writes, so Clear can wipe
// ghost data without touching anything else sharing the store.
const Namespace = "ghostlap"

// Key addresses one ghost slot: the procedural track seed, the game mode,
// and the difficulty tier. Ghosts from different tiers are not comparable,
// so the tier is part of the key.
type Key struct {
	Seed int64
	Mode string
	Tier string
}

// String renders the storage key: ghostlap_<seed>_<mode>_<tier>.
func (k Key) String() string {
	return fmt.Sprintf("%s_%d_%s_%s", Namespace, k.Seed, k.Mode, k.Tier)
}

// ParseKey inverts Key.String. Mode and tier must not contain underscores,
// which holds for every mode and tier the game defines.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 4 || parts[0] != Namespace {
		return Key{}, fmt.Errorf("ghost: malformed key %q", s)
	}
	seed, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("ghost: malformed seed in key %q: %w", s, err)
	}
	return Key{Seed: seed, Mode: parts[2], Tier: parts[3]}, nil
}

// Store persists ghost records behind the KV port. Persistence is
// best-effort: a failed save is logged and swallowed, never surfaced to the
// game loop, and a record that fails to load or parse comes back as nil.
// Saving always overwrites the existing slot, even with a slower run:
// last-write-wins, not best-time-wins.
type Store struct {
	kv    storage.KV
	log   *logrus.Logger
	clock clock.Clock
}

// NewStore wraps a KV backend. A nil logger falls back to the logrus
// standard logger.
func NewStore(kv storage.KV, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{kv: kv, log: log, clock: clock.NewRealClock()}
}

// WithClock replaces the clock used to stamp records saved without a
// timestamp. Tests use a virtual clock here.
func (s *Store) WithClock(c clock.Clock) *Store {
	s.clock = c
	return s
}

// Save validates, serializes and writes the record for key. Failures
// (storage unavailable, quota, invalid record) are logged and swallowed:
// the run outcome stands, there is simply no ghost saved. An invalid record
// is never partially written.
func (s *Store) Save(ctx context.Context, key Key, rec *Record) {
	if rec == nil {
		s.log.WithField("key", key.String()).Warn("ghost: refusing to save nil record")
		return
	}
	if err := rec.Validate(); err != nil {
		s.log.WithField("key", key.String()).WithError(err).Warn("ghost: refusing to save invalid record")
		return
	}
	if rec.RecordedAt.IsZero() {
		stamped := *rec
		stamped.RecordedAt = s.clock.Now()
		rec = &stamped
	}
	data, err := rec.Marshal()
	if err != nil {
		s.log.WithField("key", key.String()).WithError(err).Warn("ghost: record serialization failed")
		return
	}
	if err := s.kv.Set(ctx, key.String(), data); err != nil {
		s.log.WithField("key", key.String()).WithError(err).Warn("ghost: save failed")
	}
}

// Load returns the record for key, or nil if the key is absent or the
// stored value does not parse. Corrupt data is logged, not surfaced.
func (s *Store) Load(ctx context.Context, key Key) *Record {
	data, err := s.kv.Get(ctx, key.String())
	if err != nil {
		s.log.WithField("key", key.String()).WithError(err).Warn("ghost: load failed")
		return nil
	}
	if data == nil {
		return nil
	}
	rec, err := UnmarshalRecord(data)
	if err != nil {
		s.log.WithField("key", key.String()).WithError(err).Warn("ghost: discarding corrupt record")
		return nil
	}
	return rec
}

// BestTime returns the stored total run time in ms for key, if a record
// exists.
func (s *Store) BestTime(ctx context.Context, key Key) (int64, bool) {
	rec := s.Load(ctx, key)
	if rec == nil {
		return 0, false
	}
	return rec.TotalTimeMs, true
}

// BestLapTime returns the stored best lap time in ms for key, if a record
// exists.
func (s *Store) BestLapTime(ctx context.Context, key Key) (int64, bool) {
	rec := s.Load(ctx, key)
	if rec == nil {
		return 0, false
	}
	return rec.BestLapMs, true
}

// List returns the keys of every stored ghost record. Keys that do not
// parse back (foreign data under the namespace prefix) are skipped.
func (s *Store) List(ctx context.Context) ([]Key, error) {
	raw, err := s.kv.Keys(ctx, Namespace+"_")
	if err != nil {
		return nil, fmt.Errorf("ghost: listing records: %w", err)
	}
	keys := make([]Key, 0, len(raw))
	for _, r := range raw {
		k, err := ParseKey(r)
		if err != nil {
			continue
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Clear removes every key in the ghost namespace, leaving unrelated data in
// the backing store untouched.
func (s *Store) Clear(ctx context.Context) error {
	raw, err := s.kv.Keys(ctx, Namespace+"_")
	if err != nil {
		return fmt.Errorf("ghost: listing records: %w", err)
	}
	for _, r := range raw {
		if err := s.kv.Delete(ctx, r); err != nil {
			return fmt.Errorf("ghost: deleting %s: %w", r, err)
		}
	}
	return nil
}

package ghost

import (
	"encoding/json"
	"fmt"
	"time"
)

// Record is the persisted form of a completed run. Frames is the flat wire
// layout produced by the recorder; its length is always 5 × sampleCount.
// RecordedAt marshals to ISO-8601 in JSON.
type Record struct {
	Frames      []float64 `json:"frames"`
	TotalTimeMs int64     `json:"totalTimeMs"`
	LapTimes    []int64   `json:"lapTimes"`
	BestLapMs   int64     `json:"bestLapMs"`
	RecordedAt  time.Time `json:"recordedAt"`
	Version     int       `json:"version"`
}

// NewRecord builds a record from a finished recording. Lap times and the
// total come from the host's own timing; the best lap is derived here. With
// no lap times the total stands in for the best lap.
func NewRecord(frames []float64, totalMs int64, lapTimes []int64, recordedAt time.Time) *Record {
	best := totalMs
	for i, lt := range lapTimes {
		if i == 0 || lt < best {
			best = lt
		}
	}
	laps := make([]int64, len(lapTimes))
	copy(laps, lapTimes)
	return &Record{
		Frames:      frames,
		TotalTimeMs: totalMs,
		LapTimes:    laps,
		BestLapMs:   best,
		RecordedAt:  recordedAt,
		Version:     RecordVersion,
	}
}

// SampleCount returns the number of samples in the frame sequence.
func (r *Record) SampleCount() int {
	return len(r.Frames) / frameStride
}

// Duration returns the replay length implied by the frame count at the
// given sampling interval.
func (r *Record) Duration(interval float64) time.Duration {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return time.Duration(float64(r.SampleCount()) * interval * float64(time.Second))
}

// Validate checks the structural invariants of a record before it is
// persisted or replayed.
func (r *Record) Validate() error {
	if len(r.Frames)%frameStride != 0 {
		return fmt.Errorf("ghost: record frame length %d is not a multiple of %d", len(r.Frames), frameStride)
	}
	if r.TotalTimeMs < 0 {
		return fmt.Errorf("ghost: record total time %dms is negative", r.TotalTimeMs)
	}
	for i, lt := range r.LapTimes {
		if lt < 0 {
			return fmt.Errorf("ghost: lap %d time %dms is negative", i, lt)
		}
	}
	return nil
}

// Marshal encodes the record as JSON.
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalRecord decodes a stored record and checks its invariants, so a
// corrupt value is rejected in one place.
func UnmarshalRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

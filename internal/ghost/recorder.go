package ghost

import "errors"

// ErrLapRange reports a lap index outside the recorded boundary list. It
// indicates a caller bug, not a runtime condition.
var ErrLapRange = errors.New("ghost: lap index out of range")

// Recorder samples the ship pose at a fixed interval while a run is active.
// The host calls Update once per simulation tick with whatever dt its loop
// produced; the recorder carries the remainder across calls, so the sample
// count depends only on cumulative time, never on how the ticks were chunked.
//
// A Recorder is owned by a single run on a single goroutine and is not
// synchronized. It is consumed once at run end to build a Record and then
// discarded.
type Recorder struct {
	interval  float64
	acc       float64
	samples   []Sample
	lapStarts []int
}

// NewRecorder creates a recorder sampling every interval seconds. An
// interval ≤ 0 falls back to DefaultInterval. The lap boundary list always
// starts with 0: the first lap begins at the first sample.
func NewRecorder(interval float64) *Recorder {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Recorder{
		interval:  interval,
		lapStarts: []int{0},
	}
}

// Interval returns the sampling period in seconds.
func (r *Recorder) Interval() float64 {
	return r.interval
}

// Update accumulates dt seconds of run time and appends one sample per
// elapsed interval. The remainder is subtracted, not reset, so sampling
// phase does not drift under irregular dt.
func (r *Recorder) Update(dt float64, pose Sample) {
	r.acc += dt
	for r.acc >= r.interval {
		r.samples = append(r.samples, pose)
		r.acc -= r.interval
	}
}

// MarkLap records the current sample count as the start of a new lap. The
// host calls this when its lap-crossing detection fires. Marking twice at
// the same count leaves a duplicate boundary, which LapFrames tolerates as
// an empty lap.
func (r *Recorder) MarkLap() {
	r.lapStarts = append(r.lapStarts, len(r.samples))
}

// FrameCount returns the number of samples recorded so far.
func (r *Recorder) FrameCount() int {
	return len(r.samples)
}

// Frames returns the recording in flat wire layout. The returned slice is a
// copy; past samples are never mutated.
func (r *Recorder) Frames() []float64 {
	return EncodeFrames(r.samples)
}

// Laps returns a copy of the lap boundary list.
func (r *Recorder) Laps() []int {
	out := make([]int, len(r.lapStarts))
	copy(out, r.lapStarts)
	return out
}

// LapFrames returns the flat frame sub-sequence for one lap: from its start
// boundary up to the next boundary, or to the end of the recording for the
// final lap. Consecutive lap indices partition the recording exactly.
func (r *Recorder) LapFrames(lap int) ([]float64, error) {
	if lap < 0 || lap >= len(r.lapStarts) {
		return nil, ErrLapRange
	}
	start := r.lapStarts[lap]
	end := len(r.samples)
	if lap+1 < len(r.lapStarts) {
		end = r.lapStarts[lap+1]
	}
	return EncodeFrames(r.samples[start:end]), nil
}

// Package ghost records a player's trajectory during a run and replays it
// later as a translucent ghost competitor. The recorder samples the ship
// pose at a fixed interval; playback interpolates between those samples at
// whatever frame rate the host loop runs.
package ghost

import "fmt"

const (
	// DefaultInterval is the sampling period in seconds. Playback assumes
	// the same interval the recorder used.
	DefaultInterval = 0.1

	// frameStride is the number of stored values per sample. The persisted
	// frame sequence is flat: x, y, heading, thrust, speed, repeated.
	frameStride = 5

	// RecordVersion is stamped into every record written by this build.
	RecordVersion = 1
)

// Sample is one recorded time-slice of the ship's pose. Heading is in
// radians; Speed is normalized against the host's maximum speed, so it is
// always in [0, 1]. Thrust reports whether the engine was firing, which the
// host derives from its own speed threshold.
type Sample struct {
	X       float64
	Y       float64
	Heading float64
	Thrust  bool
	Speed   float64
}

// EncodeFrames flattens samples into the wire layout: five consecutive
// float64 values per sample, Thrust stored as 1 or 0.
func EncodeFrames(samples []Sample) []float64 {
	frames := make([]float64, 0, len(samples)*frameStride)
	for _, s := range samples {
		thrust := 0.0
		if s.Thrust {
			thrust = 1
		}
		frames = append(frames, s.X, s.Y, s.Heading, thrust, s.Speed)
	}
	return frames
}

// DecodeFrames parses a flat frame sequence back into samples. The length
// must be a multiple of five.
func DecodeFrames(frames []float64) ([]Sample, error) {
	if len(frames)%frameStride != 0 {
		return nil, fmt.Errorf("ghost: frame length %d is not a multiple of %d", len(frames), frameStride)
	}
	samples := make([]Sample, 0, len(frames)/frameStride)
	for i := 0; i < len(frames); i += frameStride {
		samples = append(samples, Sample{
			X:       frames[i],
			Y:       frames[i+1],
			Heading: frames[i+2],
			Thrust:  frames[i+3] != 0,
			Speed:   frames[i+4],
		})
	}
	return samples, nil
}

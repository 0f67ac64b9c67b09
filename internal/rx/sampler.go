// internal/rx/sampler.go
package rx

// Sampler converts a raw intensity reading into a boolean light state.
// Implementations must be cheap: Sample is called once per tick.
type Sampler interface {
	Sample(raw int) bool
}

// ThresholdSampler applies a fixed threshold with no hysteresis or debounce.
// A reading oscillating around the threshold produces chattering transitions;
// substituting a debounced Sampler does not require touching the engine.
type ThresholdSampler struct {
	// Threshold is the raw reading above which the light counts as ON.
	Threshold int
}

// Sample reports whether the light is ON for the given raw reading.
func (s ThresholdSampler) Sample(raw int) bool {
	return raw > s.Threshold
}

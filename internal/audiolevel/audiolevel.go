// Package audiolevel turns per-frame RMS loudness readings into a normalized
// envelope for the audio-reactive frame strategies.
package audiolevel

import (
	"math"

	"wackywebm/internal/services"
)

// Sample is one audio frame's loudness.
type Sample struct {
	Index    int
	Decibels float64
	// Percent is the loudness mapped into [0, 1], with the track average at 0.5.
	Percent float64
}

// Normalize maps raw decibel readings onto [0, 1]. Values are clamped to
// average ± deviation, where deviation is half the distance between the
// loudest reading and the average; silence (-Inf) counts as 0 for the average.
func Normalize(levels []float64) ([]Sample, error) {
	if len(levels) == 0 {
		return nil, services.ErrNoAudioSignal
	}

	highest := math.Inf(-1)
	var sum float64
	for _, db := range levels {
		highest = math.Max(highest, db)
		if !math.IsInf(db, -1) {
			sum += db
		}
	}
	if math.IsInf(highest, -1) {
		return nil, services.ErrNoAudioSignal
	}

	average := sum / float64(len(levels))
	deviation := math.Abs(highest-average) / 2

	samples := make([]Sample, len(levels))
	for i, db := range levels {
		samples[i] = Sample{Index: i, Decibels: db, Percent: percent(db, average, deviation)}
	}
	return samples, nil
}

func percent(db, average, deviation float64) float64 {
	if deviation == 0 {
		if db >= average {
			return 1
		}
		return 0
	}
	clamped := math.Max(math.Min(db, average+deviation), average-deviation)
	v := math.Min(math.Abs(clamped-average)/deviation, 1) * 0.5
	if clamped > average {
		return 0.5 + v
	}
	return 0.5 - v
}

// At maps frame index n of total onto the sample sequence and returns that
// sample's Percent.
func At(samples []Sample, n, total int) float64 {
	if len(samples) == 0 {
		return 0
	}
	last := len(samples) - 1
	if total <= 1 {
		return samples[0].Percent
	}
	index := int(math.Floor(float64(n) / float64(total-1) * float64(last)))
	return samples[min(max(index, 0), last)].Percent
}

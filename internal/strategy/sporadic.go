package strategy

import (
	"context"
	"math"
	"math/rand/v2"
)

// Sporadic picks a random size for every frame. Output differs between runs.
type Sporadic struct {
	// rnd returns values in [0, 1); nil uses the process-wide source.
	rnd func() float64
}

func (*Sporadic) Name() string { return "sporadic" }

func (*Sporadic) Setup(context.Context, SetupEnv) error { return nil }

func (s *Sporadic) FrameBounds(fc FrameContext) FrameBounds {
	if fc.FrameIndex == 0 {
		return Size(fc.Width, fc.Height)
	}
	rnd := s.rnd
	if rnd == nil {
		rnd = rand.Float64
	}
	return Size(
		int(math.Floor(rnd()*float64(fc.Width))),
		int(math.Floor(rnd()*float64(fc.Height))),
	)
}

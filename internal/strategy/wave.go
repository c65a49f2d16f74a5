package strategy

import (
	"context"
	"math"
	"strconv"
)

// wave is |cos| of the frame's phase; it completes tempo half-periods per second.
func wave(fc FrameContext) float64 {
	return math.Abs(math.Cos(float64(fc.FrameIndex) / (fc.FPS / fc.Tempo) * math.Pi))
}

func tempoSummary(p BaseParameters) []Setting {
	return []Setting{{Label: "Tempo", Value: strconv.FormatFloat(p.Tempo, 'f', -1, 64)}}
}

// Bounce squashes the height on a cosine wave.
type Bounce struct{}

func (*Bounce) Name() string { return "bounce" }

func (*Bounce) Setup(context.Context, SetupEnv) error { return nil }

func (*Bounce) FrameBounds(fc FrameContext) FrameBounds {
	if fc.FrameIndex == 0 {
		return HeightOnly(fc.Height)
	}
	return HeightOnly(int(math.Floor(wave(fc) * float64(fc.Height))))
}

func (*Bounce) Summary(p BaseParameters, _ SetupEnv) []Setting { return tempoSummary(p) }

// Shutter squashes the width on a cosine wave.
type Shutter struct{}

func (*Shutter) Name() string { return "shutter" }

func (*Shutter) Setup(context.Context, SetupEnv) error { return nil }

func (*Shutter) FrameBounds(fc FrameContext) FrameBounds {
	if fc.FrameIndex == 0 {
		return WidthOnly(fc.Width)
	}
	return WidthOnly(int(math.Floor(wave(fc) * float64(fc.Width))))
}

func (*Shutter) Summary(p BaseParameters, _ SetupEnv) []Setting { return tempoSummary(p) }

// Shrink reduces the height linearly to 1 over the video.
type Shrink struct{}

func (*Shrink) Name() string { return "shrink" }

func (*Shrink) Setup(context.Context, SetupEnv) error { return nil }

func (*Shrink) FrameBounds(fc FrameContext) FrameBounds {
	h := float64(fc.Height)
	shrunk := math.Floor(h - float64(fc.FrameIndex)/float64(fc.TotalFrames)*h)
	return HeightOnly(max(1, int(shrunk)))
}

package strategy

import (
	"context"
	"errors"
	"math"

	"wackywebm/internal/audiolevel"
	"wackywebm/internal/services"
)

// envelope holds the normalized loudness shared by the audio strategies.
type envelope struct {
	samples []audiolevel.Sample
}

func (e *envelope) load(ctx context.Context, env SetupEnv) error {
	if env.Levels == nil {
		return services.Wrap(services.ErrConfiguration, "strategy", "audio levels", "no audio level source configured", nil)
	}
	levels, err := env.Levels.ExtractLevels(ctx, env.VideoPath)
	if err != nil {
		return err
	}
	samples, err := audiolevel.Normalize(levels)
	if err != nil {
		if errors.Is(err, services.ErrNoAudioSignal) {
			return services.Wrap(services.ErrNoAudioSignal, "strategy", "audio levels", "source audio is silent", nil)
		}
		return err
	}
	e.samples = samples
	return nil
}

func (e *envelope) scale(fc FrameContext, dimension int) int {
	return int(math.Floor(math.Abs(float64(dimension) * audiolevel.At(e.samples, fc.FrameIndex, fc.TotalFrames))))
}

// AudioBounce sets the height from the audio loudness.
type AudioBounce struct{ envelope }

func (*AudioBounce) Name() string { return "audiobounce" }

func (a *AudioBounce) Setup(ctx context.Context, env SetupEnv) error { return a.load(ctx, env) }

func (a *AudioBounce) FrameBounds(fc FrameContext) FrameBounds {
	if fc.FrameIndex == 0 {
		return HeightOnly(fc.Height)
	}
	return HeightOnly(a.scale(fc, fc.Height))
}

// AudioShutter sets the width from the audio loudness.
type AudioShutter struct{ envelope }

func (*AudioShutter) Name() string { return "audioshutter" }

func (a *AudioShutter) Setup(ctx context.Context, env SetupEnv) error { return a.load(ctx, env) }

func (a *AudioShutter) FrameBounds(fc FrameContext) FrameBounds {
	if fc.FrameIndex == 0 {
		return WidthOnly(fc.Width)
	}
	return WidthOnly(a.scale(fc, fc.Width))
}

package strategy

import (
	"context"
	"fmt"
	"os"
	"strings"

	"wackywebm/internal/keyframe"
	"wackywebm/internal/logging"
	"wackywebm/internal/services"
)

// Keyframes plays back a keyframe file.
type Keyframes struct {
	table *keyframe.Table
}

func (*Keyframes) Name() string { return "keyframes" }

func (k *Keyframes) Setup(ctx context.Context, env SetupEnv) error {
	path := strings.TrimSpace(env.KeyframeFile)
	if path == "" {
		return services.Wrap(services.ErrValidation, "strategy", "keyframes", "keyframes mode needs a keyframe file", nil)
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return services.Wrap(services.ErrNotFound, "strategy", "keyframes", "keyframe file not found", err)
		}
		return fmt.Errorf("open keyframe file: %w", err)
	}
	defer file.Close()

	logger := logging.WithContext(ctx, logging.NewComponentLogger(env.Logger, "keyframes"))
	logger.Info("parsing keyframes", logging.String("file", path))

	table, err := keyframe.Parse(file, keyframe.ParseOptions{
		FPS:    env.Metadata.FPS,
		Width:  env.Metadata.Width,
		Height: env.Metadata.Height,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	k.table = table
	return nil
}

func (k *Keyframes) FrameBounds(fc FrameContext) FrameBounds {
	if k.table == nil {
		return FrameBounds{}
	}
	return Size(k.table.Interpolate(fc.FrameIndex))
}

func (*Keyframes) Summary(_ BaseParameters, env SetupEnv) []Setting {
	return []Setting{{Label: "Keyframe file", Value: env.KeyframeFile}}
}

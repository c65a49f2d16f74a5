package strategy

import (
	"context"
	"fmt"
	"math"
	"strconv"
)

// Rotate spins the frame through Angle over the whole video, growing the
// canvas so the rotated frame is never cropped.
type Rotate struct{}

func (*Rotate) Name() string { return "rotate" }

func (*Rotate) Setup(context.Context, SetupEnv) error { return nil }

func (*Rotate) FrameBounds(fc FrameContext) FrameBounds {
	w, h := float64(fc.Width), float64(fc.Height)
	if fc.FrameIndex == 0 {
		diagonal := int(math.Floor(w*math.Abs(math.Cos(math.Pi/4)) + h*math.Abs(math.Cos(math.Pi/4))))
		return Size(diagonal, diagonal)
	}

	angle := float64(fc.FrameIndex) * (fc.Angle / float64(fc.TotalFrames))
	sin, cos := math.Abs(math.Sin(angle)), math.Abs(math.Cos(angle))
	width := int(math.Floor(math.Max(w, w*cos+h*sin)))
	height := int(math.Floor(math.Max(h, w*sin+h*cos)))

	bounds := Size(width, height)
	bounds.Filter = []string{
		fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1,rotate=%.2f:bilinear=0", width, height, angle),
	}
	return bounds
}

func (*Rotate) Summary(p BaseParameters, _ SetupEnv) []Setting {
	return []Setting{{Label: "Angle", Value: strconv.FormatFloat(p.Angle, 'f', -1, 64)}}
}

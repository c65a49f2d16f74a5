package strategy

// BaseParameters holds the per-run values every frame shares.
type BaseParameters struct {
	Width       int
	Height      int
	TotalFrames int
	FPS         float64
	Tempo       float64
	Angle       float64
	Transparent bool
}

// Extend builds the context for one frame.
func (p BaseParameters) Extend(index int, path string) FrameContext {
	return FrameContext{BaseParameters: p, FrameIndex: index, FramePath: path}
}

// FrameContext is the input to Strategy.FrameBounds.
type FrameContext struct {
	BaseParameters
	FrameIndex int
	FramePath  string
}

// FrameBounds is a strategy's opinion about one frame. Nil fields leave the
// value unchanged. A non-nil Filter replaces the default scale filter.
type FrameBounds struct {
	Width  *int
	Height *int
	Filter []string
}

// Size returns bounds that set both dimensions.
func Size(width, height int) FrameBounds {
	return FrameBounds{Width: &width, Height: &height}
}

// WidthOnly returns bounds that only set the width.
func WidthOnly(width int) FrameBounds {
	return FrameBounds{Width: &width}
}

// HeightOnly returns bounds that only set the height.
func HeightOnly(height int) FrameBounds {
	return FrameBounds{Height: &height}
}

// Merge overlays the non-nil fields of next onto b.
func (b FrameBounds) Merge(next FrameBounds) FrameBounds {
	if next.Width != nil {
		b.Width = next.Width
	}
	if next.Height != nil {
		b.Height = next.Height
	}
	if next.Filter != nil {
		b.Filter = next.Filter
	}
	return b
}

// Dimensions returns the width and height, falling back to the supplied
// values for nil fields.
func (b FrameBounds) Dimensions(width, height int) (int, int) {
	if b.Width != nil {
		width = *b.Width
	}
	if b.Height != nil {
		height = *b.Height
	}
	return width, height
}

// Compose folds every strategy's bounds for fc onto base.
func Compose(base FrameBounds, strategies []Strategy, fc FrameContext) FrameBounds {
	for _, s := range strategies {
		base = base.Merge(s.FrameBounds(fc))
	}
	return base
}

package keyframe

import (
	"log/slog"
	"math"

	"wackywebm/internal/logging"
)

// Mode selects how sizes move between two records.
type Mode string

const (
	Linear  Mode = "linear"
	Instant Mode = "instant"
)

// Record is one keyframe: the size at an absolute frame index.
type Record struct {
	Time   int
	Width  int
	Height int
	Mode   Mode
}

type interpolator func(cur, next Record, t float64) (int, int)

var interpolators = map[Mode]interpolator{
	Linear: func(cur, next Record, t float64) (int, int) {
		return int(math.Floor(float64(cur.Width) + t*float64(next.Width-cur.Width))),
			int(math.Floor(float64(cur.Height) + t*float64(next.Height-cur.Height)))
	},
	Instant: func(cur, _ Record, _ float64) (int, int) {
		return cur.Width, cur.Height
	},
}

// Table plays keyframes back in frame order. The cursor only moves forward,
// so a Table serves one pass over a video and is not safe for concurrent use.
type Table struct {
	records []Record
	cursor  int
	logger  *slog.Logger
}

// NewTable wraps records that are already sorted by Time and start at frame 0.
func NewTable(records []Record, logger *slog.Logger) *Table {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Table{records: records, logger: logger}
}

// Records returns a copy of the keyframes.
func (t *Table) Records() []Record {
	return append([]Record(nil), t.records...)
}

// Interpolate returns the size for frame.
func (t *Table) Interpolate(frame int) (int, int) {
	if len(t.records) == 0 {
		return 0, 0
	}
	last := len(t.records) - 1
	advanced := false
	for t.cursor < last && frame >= t.records[t.cursor+1].Time {
		if advanced {
			logging.WarnWithContext(t.logger, "keyframe skipped", "keyframe_excess",
				logging.Int("keyframe_time", t.records[t.cursor].Time),
				logging.Int("frame", frame),
				logging.String(logging.FieldImpact, "earlier keyframe at the same frame has no effect"),
				logging.String(logging.FieldErrorHint, "remove duplicate keyframes for this frame"),
			)
		}
		t.cursor++
		advanced = true
	}

	cur := t.records[t.cursor]
	if t.cursor == last {
		return cur.Width, cur.Height
	}
	next := t.records[t.cursor+1]
	span := next.Time - cur.Time
	if span <= 0 {
		return cur.Width, cur.Height
	}
	frac := max(float64(frame-cur.Time)/float64(span), 0)

	interp, ok := interpolators[cur.Mode]
	if !ok {
		interp = interpolators[Linear]
	}
	return interp(cur, next, frac)
}

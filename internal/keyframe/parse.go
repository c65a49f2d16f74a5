package keyframe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"wackywebm/internal/logging"
)

// ParseOptions supplies the source properties expressions resolve against.
type ParseOptions struct {
	FPS    float64
	Width  int
	Height int
	Logger *slog.Logger
}

var timeSeparators = regexp.MustCompile(`[:.\-]`)

// Parse reads a keyframe file into a playback table. Records are sorted by
// time and a linear record holding the source size is prepended when the
// file does not start at frame 0.
func Parse(r io.Reader, opts ParseOptions) (*Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	var records []Record
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var prev *Record
		if len(records) > 0 {
			prev = &records[len(records)-1]
		}
		record, err := parseLine(line, prev, opts, logger.With(logging.Int("line", lineNo)))
		if err != nil {
			err.Line = lineNo
			return nil, err
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read keyframes: %w", err)
	}

	slices.SortStableFunc(records, func(a, b Record) int { return a.Time - b.Time })
	if len(records) == 0 || records[0].Time != 0 {
		records = append([]Record{{Time: 0, Width: opts.Width, Height: opts.Height, Mode: Linear}}, records...)
	}
	return NewTable(records, logger), nil
}

func parseLine(line string, prev *Record, opts ParseOptions, logger *slog.Logger) (Record, *ParseError) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.ToLower(strings.TrimSpace(fields[i]))
	}
	if len(fields) < 3 || len(fields) > 4 {
		detail := "too many fields"
		if len(fields) < 3 {
			detail = "not enough fields"
		}
		return Record{}, newError(FieldCountInvalid, line, detail)
	}

	frame, err := parseTime(fields[0], opts.FPS, logger)
	if err != nil {
		return Record{}, err
	}

	mode := Linear
	if len(fields) == 4 && fields[3] != "" {
		mode = Mode(fields[3])
		if _, ok := interpolators[mode]; !ok {
			return Record{}, newError(UnknownInterpolationMode, fields[3], "")
		}
	}

	width, err := evalField(fields[1], opts.Width, prev, true)
	if err != nil {
		return Record{}, err
	}
	height, err := evalField(fields[2], opts.Height, prev, false)
	if err != nil {
		return Record{}, err
	}

	return Record{Time: frame, Width: width, Height: height, Mode: mode}, nil
}

func parseTime(value string, fps float64, logger *slog.Logger) (int, *ParseError) {
	parts := timeSeparators.Split(value, -1)
	if len(parts) < 1 || len(parts) > 2 {
		return 0, newError(TimeFormatInvalid, value, "")
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return 0, newError(TimeFormatInvalid, value, "")
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, newError(TimeFormatInvalid, value, err.Error())
		}
		nums[i] = n
	}

	frame := int(math.Floor(float64(nums[0]) * fps))
	if len(nums) == 2 {
		frame += nums[1]
		if float64(nums[1]) >= fps {
			logging.WarnWithContext(logger, "keyframe frame component exceeds frame rate", "keyframe_large_frame_specifier",
				logging.String("time", value),
				logging.Float64("fps", fps),
				logging.String(logging.FieldImpact, "keyframe lands in a later second"),
				logging.String(logging.FieldErrorHint, "use seconds.frames with frames below the frame rate"),
			)
		}
	}
	return frame, nil
}

func evalField(expr string, original int, prev *Record, isWidth bool) (int, *ParseError) {
	prog, err := Compile(expr)
	if err != nil {
		return 0, asParseError(err)
	}
	env := Env{Original: original}
	if prev != nil {
		env.HasPrevious = true
		env.LastWidth = prev.Width
		env.LastHeight = prev.Height
		env.Last = prev.Height
		if isWidth {
			env.Last = prev.Width
		}
	}
	value, err := prog.Eval(env)
	if err != nil {
		return 0, asParseError(err)
	}
	return value, nil
}

func asParseError(err error) *ParseError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return newError(ExpressionInvalid, "", err.Error())
}

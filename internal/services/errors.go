package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTransient     = errors.New("transient failure")
)

// Domain failures. Adapters wrap these so callers can branch on the kind of
// problem without parsing messages.
var (
	ErrProbe         = errors.New("probe failed")
	ErrNoAudioTrack  = errors.New("no audio track")
	ErrNoAudioSignal = errors.New("no audio signal")
	ErrEncode        = errors.New("segment encode failed")
	ErrConcat        = errors.New("concat failed")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ToolError carries the diagnostic text an external tool printed before
// exiting non-zero.
type ToolError struct {
	Kind       error
	Tool       string
	Diagnostic string
	Err        error
}

func (e *ToolError) Error() string {
	var b strings.Builder
	b.WriteString(e.kind().Error())
	if e.Tool != "" {
		b.WriteString(": ")
		b.WriteString(e.Tool)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if diag := strings.TrimSpace(e.Diagnostic); diag != "" {
		b.WriteString("\n")
		b.WriteString(diag)
	}
	return b.String()
}

// Unwrap exposes both the kind marker and the process error.
func (e *ToolError) Unwrap() []error {
	out := []error{e.kind(), ErrExternalTool}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func (e *ToolError) kind() error {
	if e.Kind == nil {
		return ErrExternalTool
	}
	return e.Kind
}

// EncodeError reports a failed segment encode along with the segment index.
type EncodeError struct {
	Segment int
	ToolError
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("segment %d: %s", e.Segment, e.ToolError.Error())
}

func (e *EncodeError) Unwrap() []error {
	return e.ToolError.Unwrap()
}

// IsUserError reports whether err stems from bad input or configuration rather
// than a tool or environment failure.
func IsUserError(err error) bool {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration), errors.Is(err, ErrNotFound):
		return true
	case errors.Is(err, ErrNoAudioTrack), errors.Is(err, ErrNoAudioSignal):
		return true
	default:
		return false
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

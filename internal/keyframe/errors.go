package keyframe

import (
	"errors"
	"fmt"

	"wackywebm/internal/services"
)

// ErrKeyframeParse marks every keyframe file error.
var ErrKeyframeParse = errors.New("keyframe parse error")

// ErrorKind classifies keyframe file errors.
type ErrorKind int

const (
	FieldCountInvalid ErrorKind = iota + 1
	TimeFormatInvalid
	UnknownInterpolationMode
	InvalidKeyframeReference
	ExpressionInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case FieldCountInvalid:
		return "field count invalid"
	case TimeFormatInvalid:
		return "time format invalid"
	case UnknownInterpolationMode:
		return "unknown interpolation mode"
	case InvalidKeyframeReference:
		return "invalid keyframe reference"
	case ExpressionInvalid:
		return "expression invalid"
	default:
		return "unknown"
	}
}

// ParseError describes a rejected keyframe line. Line is 1-based; it is zero
// for errors raised outside Parse (for example by Compile).
type ParseError struct {
	Kind   ErrorKind
	Line   int
	Input  string
	Detail string
}

func (e *ParseError) Error() string {
	msg := e.Kind.String()
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Input != "" {
		msg += fmt.Sprintf(" %q", e.Input)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrKeyframeParse, services.ErrValidation}
}

func newError(kind ErrorKind, input, detail string) *ParseError {
	return &ParseError{Kind: kind, Input: input, Detail: detail}
}

package services_test

import (
	"errors"
	"strings"
	"testing"

	"wackywebm/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "encode", "segment", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"encode", "segment", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestEncodeErrorMatchesMarkers(t *testing.T) {
	exit := errors.New("exit status 1")
	err := error(&services.EncodeError{
		Segment:   3,
		ToolError: services.ToolError{Kind: services.ErrEncode, Tool: "ffmpeg", Diagnostic: "Invalid argument", Err: exit},
	})
	if !errors.Is(err, services.ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !errors.Is(err, exit) {
		t.Fatalf("expected process error to be reachable, got %v", err)
	}
	var encErr *services.EncodeError
	if !errors.As(err, &encErr) || encErr.Segment != 3 {
		t.Fatalf("expected EncodeError for segment 3, got %#v", err)
	}
	if !strings.Contains(err.Error(), "Invalid argument") {
		t.Fatalf("expected diagnostic in message, got %q", err.Error())
	}
}

func TestIsUserError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", services.Wrap(services.ErrValidation, "modes", "select", "unknown", nil), true},
		{"no audio", services.Wrap(services.ErrNoAudioTrack, "setup", "audio", "", nil), true},
		{"tool", services.Wrap(services.ErrExternalTool, "encode", "", "", nil), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		if got := services.IsUserError(tc.err); got != tc.want {
			t.Fatalf("%s: IsUserError = %v, want %v", tc.name, got, tc.want)
		}
	}
}

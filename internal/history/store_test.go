package history_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"wackywebm/internal/history"
	"wackywebm/internal/services"
	"wackywebm/internal/testsupport"
)

func TestBeginFinishGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	run := history.Run{
		ID:     "run-1",
		Source: "/videos/in.mp4",
		Output: "/videos/in_bounce_rotate.webm",
		Modes:  []string{"bounce", "rotate"},
	}
	if err := store.Begin(ctx, run); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != history.StatusRunning {
		t.Fatalf("status = %s, want running", got.Status)
	}
	if len(got.Modes) != 2 || got.Modes[1] != "rotate" {
		t.Fatalf("modes = %v", got.Modes)
	}
	if !got.FinishedAt.IsZero() {
		t.Fatalf("expected no finish time, got %v", got.FinishedAt)
	}

	if err := store.Finish(ctx, "run-1", 4, 120, nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	got, err = store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != history.StatusSucceeded || got.Segments != 4 || got.Frames != 120 {
		t.Fatalf("unexpected finished run %+v", got)
	}
	if got.Error != "" {
		t.Fatalf("unexpected error text %q", got.Error)
	}
	if got.Duration() < 0 {
		t.Fatalf("negative duration %v", got.Duration())
	}
}

func TestFinishClassifiesErrors(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	for _, id := range []string{"failed", "canceled"} {
		if err := store.Begin(ctx, history.Run{ID: id, Source: "a", Output: "b"}); err != nil {
			t.Fatalf("Begin %s: %v", id, err)
		}
	}
	if err := store.Finish(ctx, "failed", 1, 10, errors.New("boom")); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if err := store.Finish(ctx, "canceled", 0, 0, fmt.Errorf("run: %w", context.Canceled)); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	failed, _ := store.Get(ctx, "failed")
	if failed.Status != history.StatusFailed || failed.Error != "boom" {
		t.Fatalf("unexpected failed run %+v", failed)
	}
	canceled, _ := store.Get(ctx, "canceled")
	if canceled.Status != history.StatusCanceled {
		t.Fatalf("unexpected canceled run %+v", canceled)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := range 3 {
		run := history.Run{
			ID:        fmt.Sprintf("run-%d", i),
			Source:    "in.mp4",
			Output:    "out.webm",
			StartedAt: base.Add(time.Duration(i) * 1500 * time.Millisecond),
		}
		if err := store.Begin(ctx, run); err != nil {
			t.Fatalf("Begin: %v", err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-2" || runs[1].ID != "run-1" {
		t.Fatalf("unexpected order: %+v", runs)
	}
	if !runs[0].StartedAt.Equal(base.Add(3 * time.Second)) {
		t.Fatalf("started_at round trip = %v", runs[0].StartedAt)
	}

	all, err := store.List(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("List all = %d runs, err %v", len(all), err)
	}
}

func TestMissingRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	if _, err := store.Get(ctx, "absent"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Get absent: expected ErrNotFound, got %v", err)
	}
	if err := store.Finish(ctx, "absent", 0, 0, nil); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("Finish absent: expected ErrNotFound, got %v", err)
	}
	if err := store.Begin(ctx, history.Run{}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("Begin without id: expected ErrValidation, got %v", err)
	}
}

func TestPruneKeepsRunningRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	for _, id := range []string{"done", "active"} {
		if err := store.Begin(ctx, history.Run{ID: id, Source: "a", Output: "b", StartedAt: old}); err != nil {
			t.Fatalf("Begin: %v", err)
		}
	}
	if err := store.Finish(ctx, "done", 1, 1, nil); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	n, err := store.Prune(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Fatalf("pruned %d rows, want 1", n)
	}
	if _, err := store.Get(ctx, "active"); err != nil {
		t.Fatalf("running run should survive prune: %v", err)
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Begin(context.Background(), history.Run{ID: "x", Source: "a", Output: "b"}); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	_ = store.Close()

	reopened := testsupport.MustOpenHistory(t, cfg)
	if _, err := reopened.Get(context.Background(), "x"); err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
}

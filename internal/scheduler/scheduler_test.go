package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"wackywebm/internal/media"
	"wackywebm/internal/progress"
	"wackywebm/internal/services"
	"wackywebm/internal/strategy"
)

// stepStrategy returns the source size before frame at and a fixed size after.
type stepStrategy struct {
	at            int
	width, height int
}

func (*stepStrategy) Name() string { return "step" }

func (*stepStrategy) Setup(context.Context, strategy.SetupEnv) error { return nil }

func (s *stepStrategy) FrameBounds(fc strategy.FrameContext) strategy.FrameBounds {
	if fc.FrameIndex < s.at {
		return strategy.Size(fc.Width, fc.Height)
	}
	return strategy.Size(s.width, s.height)
}

// wildStrategy asks for sizes far outside the source bounds.
type wildStrategy struct{}

func (wildStrategy) Name() string { return "wild" }

func (wildStrategy) Setup(context.Context, strategy.SetupEnv) error { return nil }

func (wildStrategy) FrameBounds(fc strategy.FrameContext) strategy.FrameBounds {
	if fc.FrameIndex%2 == 0 {
		return strategy.Size(-50, 0)
	}
	return strategy.Size(fc.Width*3, fc.Height*5)
}

type recordingEncoder struct {
	mu     sync.Mutex
	jobs   []media.EncodeJob
	encode func(ctx context.Context, job media.EncodeJob) error
}

func (r *recordingEncoder) EncodeSegment(ctx context.Context, job media.EncodeJob) error {
	r.mu.Lock()
	r.jobs = append(r.jobs, job)
	r.mu.Unlock()
	if r.encode != nil {
		return r.encode(ctx, job)
	}
	return nil
}

func params(total int) strategy.BaseParameters {
	return strategy.BaseParameters{Width: 640, Height: 360, TotalFrames: total, FPS: 30, Tempo: 2, Angle: 360}
}

func TestRunGroupsConstantRunThenJump(t *testing.T) {
	release := make(chan struct{})
	var (
		mu        sync.Mutex
		completed []int
	)
	enc := &recordingEncoder{encode: func(ctx context.Context, job media.EncodeJob) error {
		// The first segment finishes only after the second one.
		if job.Segment == 0 {
			<-release
		}
		mu.Lock()
		completed = append(completed, job.Segment)
		mu.Unlock()
		if job.Segment == 1 {
			close(release)
		}
		return nil
	}}
	events := make(chan progress.Event, 100)

	s := &Scheduler{
		Params:      params(100),
		FrameRate:   "30/1",
		Strategies:  []strategy.Strategy{&stepStrategy{at: 50, width: 320, height: 180}},
		Compression: 10,
		Threads:     2,
		Bitrate:     500_000,
		FrameDir:    "/scratch/frames",
		SegmentDir:  "/scratch/segments",
		Encoder:     enc,
		Progress:    events,
	}
	plan, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	close(events)

	if len(plan.Segments) != 2 || len(plan.Paths) != 2 {
		t.Fatalf("expected 2 segments, got %+v", plan.Segments)
	}
	first, second := plan.Segments[0], plan.Segments[1]
	if first.StartFrame != 0 || first.FrameCount != 50 || first.Width != 640 || first.Height != 360 {
		t.Fatalf("first segment = %+v", first)
	}
	if second.StartFrame != 50 || second.FrameCount != 50 || second.Width != 320 || second.Height != 180 {
		t.Fatalf("second segment = %+v", second)
	}
	if plan.Paths[0] != "/scratch/segments/segment-00000.webm" || plan.Paths[1] != "/scratch/segments/segment-00001.webm" {
		t.Fatalf("paths = %v", plan.Paths)
	}
	if len(completed) != 2 || completed[0] != 1 || completed[1] != 0 {
		t.Fatalf("expected out-of-order completion, got %v", completed)
	}

	var got int
	for ev := range events {
		got += ev.Frames
	}
	if got != 100 {
		t.Fatalf("progress frames = %d, want 100", got)
	}
}

func TestRunEncodeJobFields(t *testing.T) {
	enc := &recordingEncoder{}
	p := params(30)
	p.Transparent = true
	s := &Scheduler{
		Params:     p,
		FrameRate:  "30000/1001",
		Strategies: []strategy.Strategy{&stepStrategy{at: 25, width: 100, height: 100}},
		Threads:    3,
		Bitrate:    750_000,
		FrameDir:   "/f",
		SegmentDir: "/s",
		Encoder:    enc,
	}
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	jobs := map[int]media.EncodeJob{}
	for _, job := range enc.jobs {
		jobs[job.Segment] = job
	}
	first := jobs[0]
	// 30 frames over 3 threads caps segments at 11 frames
	if first.FrameCount != 11 || first.Threads != 2 || first.Bitrate != 750_000 || !first.Transparent ||
		first.FrameRate != "30000/1001" || first.FrameDir != "/f" || first.OutputPath != "/s/segment-00000.webm" {
		t.Fatalf("first job = %+v", first)
	}
	last := jobs[len(jobs)-1]
	if last.Threads != 1 {
		t.Fatalf("final segment threads = %d, want 1", last.Threads)
	}
}

func TestRunLastFrameBoundaryIsOwnSegment(t *testing.T) {
	s := &Scheduler{
		Params:     params(10),
		Strategies: []strategy.Strategy{&stepStrategy{at: 9, width: 320, height: 180}},
		Threads:    1,
		Dry:        true,
	}
	plan, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(plan.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %+v", plan.Segments)
	}
	if plan.Segments[0].FrameCount != 9 || plan.Segments[0].Width != 640 {
		t.Fatalf("first segment = %+v", plan.Segments[0])
	}
	if plan.Segments[1].StartFrame != 9 || plan.Segments[1].FrameCount != 1 || plan.Segments[1].Width != 320 {
		t.Fatalf("last segment = %+v", plan.Segments[1])
	}
}

func TestRunClampsToSafeRange(t *testing.T) {
	s := &Scheduler{
		Params:     params(40),
		Strategies: []strategy.Strategy{wildStrategy{}},
		Threads:    3,
		Dry:        true,
	}
	plan, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if plan.Frames() != 40 {
		t.Fatalf("plan covers %d frames, want 40", plan.Frames())
	}
	for _, seg := range plan.Segments {
		if seg.Width < 1 || seg.Width > 640 || seg.Height < 1 || seg.Height > 360 {
			t.Fatalf("segment %d size %dx%d outside clamp range", seg.Index, seg.Width, seg.Height)
		}
	}
}

func TestRunCapsSegmentLength(t *testing.T) {
	s := &Scheduler{Params: params(20), Threads: 4, Dry: true}
	plan, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	counts := make([]int, len(plan.Segments))
	for i, seg := range plan.Segments {
		counts[i] = seg.FrameCount
	}
	want := []int{6, 6, 6, 2}
	if len(counts) != len(want) {
		t.Fatalf("segment lengths = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("segment lengths = %v, want %v", counts, want)
		}
	}
}

func TestRunSmoothsSizes(t *testing.T) {
	s := &Scheduler{
		Params:     strategy.BaseParameters{Width: 100, Height: 100, TotalFrames: 8, FPS: 30},
		Strategies: []strategy.Strategy{&stepStrategy{at: 5, width: 50, height: 50}},
		Smoothing:  2,
		Threads:    1,
		Dry:        true,
	}
	plan, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	type span struct{ start, count, size int }
	want := []span{{0, 5, 100}, {5, 1, 75}, {6, 2, 50}}
	if len(plan.Segments) != len(want) {
		t.Fatalf("segments = %+v", plan.Segments)
	}
	for i, w := range want {
		seg := plan.Segments[i]
		if seg.StartFrame != w.start || seg.FrameCount != w.count || seg.Width != w.size || seg.Height != w.size {
			t.Fatalf("segment %d = %+v, want %+v", i, seg, w)
		}
	}
}

func TestRunReturnsFirstEncodeError(t *testing.T) {
	boom := errors.New("exit status 1")
	enc := &recordingEncoder{encode: func(_ context.Context, job media.EncodeJob) error {
		if job.Segment == 1 {
			return boom
		}
		return nil
	}}
	s := &Scheduler{
		Params:     params(100),
		Strategies: []strategy.Strategy{&stepStrategy{at: 50, width: 320, height: 180}},
		Threads:    1,
		Encoder:    enc,
	}
	_, err := s.Run(context.Background())
	var encErr *services.EncodeError
	if !errors.As(err, &encErr) || encErr.Segment != 1 {
		t.Fatalf("expected EncodeError for segment 1, got %v", err)
	}
	if !errors.Is(err, services.ErrEncode) || !errors.Is(err, boom) {
		t.Fatalf("expected error chain to include ErrEncode and cause, got %v", err)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Scheduler{Params: params(10), Threads: 1, Encoder: &recordingEncoder{}}
	if _, err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunValidatesInput(t *testing.T) {
	if _, err := (&Scheduler{Params: params(0), Dry: true}).Run(context.Background()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for zero frames, got %v", err)
	}
	if _, err := (&Scheduler{Params: params(5)}).Run(context.Background()); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error without encoder, got %v", err)
	}
}

func TestJobThreads(t *testing.T) {
	tests := []struct{ threads, frames, want int }{
		{8, 25, 3},
		{2, 100, 2},
		{4, 1, 1},
		{0, 50, 1},
	}
	for _, tt := range tests {
		if got := jobThreads(tt.threads, tt.frames); got != tt.want {
			t.Errorf("jobThreads(%d, %d) = %d, want %d", tt.threads, tt.frames, got, tt.want)
		}
	}
}

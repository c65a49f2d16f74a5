package logging

import "testing"

func TestNewProgressSamplerDefaults(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"default bucket size for zero", 0, 10},
		{"default bucket size for negative", -1, 10},
		{"custom bucket size", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSamplerNilSampler(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "encode") {
		t.Error("ShouldLog on nil sampler should always return true")
	}
	s.Reset()
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)

	if !s.ShouldLog(0, "encode") {
		t.Fatal("first event should log")
	}
	if s.ShouldLog(5, "encode") {
		t.Fatal("same bucket should not log")
	}
	if !s.ShouldLog(12, "encode") {
		t.Fatal("new bucket should log")
	}
	if !s.ShouldLog(100, "encode") {
		t.Fatal("completion should log")
	}
	if s.ShouldLog(150, "encode") {
		t.Fatal("values past 100 share the final bucket")
	}
	if !s.ShouldLog(0, "concat") {
		t.Fatal("stage change should log")
	}
	if s.ShouldLog(-1, "concat") {
		t.Fatal("unknown percent on same stage should not log")
	}

	s.Reset()
	if !s.ShouldLog(0, "concat") {
		t.Fatal("reset sampler should log again")
	}
}

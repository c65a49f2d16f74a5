package logs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wackywebm.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestLastReturnsTrailingLines(t *testing.T) {
	path := writeLog(t, "one", "two", "three", "four")

	lines, offset, err := Last(path, 2, Filter{})
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if strings.Join(lines, ",") != "three,four" {
		t.Fatalf("lines = %v", lines)
	}
	info, _ := os.Stat(path)
	if offset != info.Size() {
		t.Fatalf("offset = %d, want %d", offset, info.Size())
	}

	lines, _, err = Last(path, 10, Filter{})
	if err != nil || len(lines) != 4 {
		t.Fatalf("expected all 4 lines, got %v (err %v)", lines, err)
	}
}

func TestLastFiltersByRunID(t *testing.T) {
	path := writeLog(t,
		`2026-01-01 10:00:00 INFO pipeline: probed input run_id=aaa`,
		`2026-01-01 10:00:01 INFO pipeline: probed input run_id=bbb`,
		`{"ts":"x","level":"info","msg":"run complete","run_id":"aaa"}`,
	)
	lines, _, err := Last(path, 10, Filter{RunID: "aaa"})
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(lines) != 2 || strings.Contains(lines[0], "bbb") {
		t.Fatalf("unexpected filtered lines %v", lines)
	}
}

func TestLastMissingFile(t *testing.T) {
	lines, offset, err := Last(filepath.Join(t.TempDir(), "absent.log"), 5, Filter{})
	if err != nil || lines != nil || offset != 0 {
		t.Fatalf("expected empty result, got %v %d %v", lines, offset, err)
	}
}

func TestFollowEmitsAppendedLines(t *testing.T) {
	path := writeLog(t, "old")
	_, offset, err := Last(path, 0, Filter{})
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	var (
		mu  sync.Mutex
		got []string
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, offset, Filter{}, func(line string) {
			mu.Lock()
			got = append(got, line)
			mu.Unlock()
		})
	}()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := f.WriteString("new line\npartial"); err != nil {
		t.Fatalf("append: %v", err)
	}
	_ = f.Close()

	deadline := time.Now().Add(5 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "new line" {
		t.Fatalf("followed lines = %v", got)
	}
}

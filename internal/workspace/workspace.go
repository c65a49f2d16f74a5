// Package workspace manages the per-run scratch directory, the concat
// manifest, stale scratch cleanup, and the lock that keeps two runs from
// writing the same output file.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Workspace is the scratch layout of one run:
//
//	<scratch>/<run-id>/frames/00001.png ...
//	<scratch>/<run-id>/segments/segment-00000.webm ...
//	<scratch>/<run-id>/audio.webm
//	<scratch>/<run-id>/concat.txt
type Workspace struct {
	RunID        string
	Root         string
	FrameDir     string
	SegmentDir   string
	AudioPath    string
	ManifestPath string
}

// Create makes the directories for runID under scratchDir. A blank runID gets
// a fresh UUID. Directories it created are removed again if a later one fails.
func Create(scratchDir, runID string) (*Workspace, error) {
	scratchDir = strings.TrimSpace(scratchDir)
	if scratchDir == "" {
		return nil, fmt.Errorf("scratch directory not configured")
	}
	if runID = strings.TrimSpace(runID); runID == "" {
		runID = uuid.NewString()
	}
	root := filepath.Join(scratchDir, runID)
	ws := &Workspace{
		RunID:        runID,
		Root:         root,
		FrameDir:     filepath.Join(root, "frames"),
		SegmentDir:   filepath.Join(root, "segments"),
		AudioPath:    filepath.Join(root, "audio.webm"),
		ManifestPath: filepath.Join(root, "concat.txt"),
	}
	rootExisted := exists(root)
	var created []string
	for _, dir := range []string{ws.FrameDir, ws.SegmentDir} {
		fresh := !exists(dir)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			if !rootExisted {
				_ = os.RemoveAll(root)
			} else {
				for _, c := range created {
					_ = os.RemoveAll(c)
				}
			}
			return nil, fmt.Errorf("create workspace dir %q: %w", dir, err)
		}
		if fresh {
			created = append(created, dir)
		}
	}
	return ws, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteManifest writes an ffmpeg concat list with one absolute path per line,
// in the given order.
func (w *Workspace) WriteManifest(paths []string) error {
	var b strings.Builder
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve segment path %q: %w", path, err)
		}
		b.WriteString("file '")
		b.WriteString(strings.ReplaceAll(abs, "'", `'\''`))
		b.WriteString("'\n")
	}
	if err := os.WriteFile(w.ManifestPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}
	return nil
}

// Remove deletes the whole workspace.
func (w *Workspace) Remove() error {
	if w == nil || w.Root == "" {
		return nil
	}
	if err := os.RemoveAll(w.Root); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	return nil
}

package preflight

import (
	"fmt"
	"strings"

	"wackywebm/internal/config"
	"wackywebm/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Request describes the run being checked.
type Request struct {
	OutputDir string
	// ScratchBytes is the estimated size of the extracted frames. Zero skips
	// the free space check.
	ScratchBytes uint64
}

// RunAll executes the preflight checks for a run.
func RunAll(cfg *config.Config, req Request) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckDirectoryAccess("Scratch directory", cfg.Paths.ScratchDir))
	if req.OutputDir != "" {
		results = append(results, CheckDirectoryAccess("Output directory", req.OutputDir))
	}
	if req.ScratchBytes > 0 {
		results = append(results, CheckFreeSpace("Scratch space", cfg.Paths.ScratchDir, req.ScratchBytes))
	}
	for _, status := range CheckSystemDeps(cfg) {
		results = append(results, Result{
			Name:   status.Name,
			Passed: status.Available || status.Optional,
			Detail: statusDetail(status.Path, status.Detail),
		})
	}
	return results
}

// Failed converts failed results into a configuration error, or nil when
// every check passed.
func Failed(results []Result) error {
	var failures []string
	for _, r := range results {
		if !r.Passed {
			failures = append(failures, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "checks",
		strings.Join(failures, "; "), nil)
}

func statusDetail(path, detail string) string {
	if detail != "" {
		return detail
	}
	return path
}

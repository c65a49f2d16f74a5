// Package logs reads the wackywebm log file for the `logs` command: the last
// lines of the file, optionally narrowed to one run, and a polling follow
// mode for watching a run from another terminal.
package logs

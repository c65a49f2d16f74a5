package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	// statusValue prints a plain value with no badge (sizes, counts, timings).
	statusValue statusKind = iota
	statusOK
	statusWarn
	// statusMissing marks an external tool that could not be found.
	statusMissing
	statusFail
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

const (
	statusLabelWidth = 14
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	body := message
	if badge := statusBadge(kind); badge != "" {
		body = strings.TrimSpace(badge + " " + message)
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", body)
	if colorize {
		if color := statusColor(kind); color != "" {
			return color + line + ansiReset
		}
	}
	return line
}

func statusBadge(kind statusKind) string {
	switch kind {
	case statusOK:
		return "[OK]"
	case statusWarn:
		return "[WARN]"
	case statusMissing:
		return "[MISSING]"
	case statusFail:
		return "[FAIL]"
	default:
		return ""
	}
}

func statusColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusMissing, statusFail:
		return ansiRed
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiCyan + line + ansiReset
		rule = ansiCyan + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

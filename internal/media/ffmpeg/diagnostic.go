package ffmpeg

import (
	"regexp"
	"strings"
)

var bannerPattern = regexp.MustCompile(
	`ff(?:mpeg|probe) version [^\n]+\n(?:\s*built with [^\n]+\n|\s*lib[^\n]+\n|\s*configuration:[^\n]+\n)*([\s\S]*)`,
)

// Diagnostic strips the version and build configuration banner from tool
// stderr, keeping the text printed after it.
func Diagnostic(stderr []byte) string {
	text := string(stderr)
	matches := bannerPattern.FindAllStringSubmatch(text, -1)
	if len(matches) > 0 {
		text = matches[len(matches)-1][1]
	}
	return strings.TrimSpace(text)
}

package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase converts a mode or word list to title case ("audio_bounce" ->
// "Audio Bounce"). Underscores and hyphens become spaces.
func TitleCase(value string) string {
	value = strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	return cases.Title(language.Und).String(strings.Join(strings.Fields(value), " "))
}

// TitleList title-cases each value and joins them with sep.
func TitleList(values []string, sep string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := TitleCase(v); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, sep)
}

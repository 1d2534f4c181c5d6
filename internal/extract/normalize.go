package extract

import (
	"regexp"
	"strings"
)

// The allowed output alphabet: lowercase letters, digits, common punctuation,
// space, tab and newline. Everything else is removed outright, so control
// characters and non-ASCII runes never reach the stored artifact.
var (
	reDisallowed = regexp.MustCompile(`[^\na-z0-9|.,!?:;'"()\[\]{}\-_/\\ \t]`)
	reHorizontal = regexp.MustCompile(`[ \t]+`)
	reNewlines   = regexp.MustCompile(`\n+`)
)

// Normalize lowercases text and reduces it to the allowed alphabet, with runs
// of horizontal whitespace collapsed to one space, every line trimmed, and
// runs of newlines collapsed to one newline. The result has no blank lines
// and no leading or trailing whitespace. Idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = reDisallowed.ReplaceAllString(text, "")
	text = reHorizontal.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = reNewlines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

package tune

import (
	"strings"
)

// SplitBook splits a file of tunes at each X: line. Text before the first
// X: is the file header and comes back separately.
func SplitBook(text string) (fileHeader string, tunes []string) {
	var (
		cur    []string
		inTune bool
	)
	flush := func() {
		s := strings.TrimSpace(strings.Join(cur, "\n"))
		cur = nil
		if s == "" {
			return
		}
		if inTune {
			tunes = append(tunes, s)
		} else {
			fileHeader = s
		}
	}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "X:") {
			flush()
			inTune = true
		}
		cur = append(cur, line)
	}
	flush()
	return fileHeader, tunes
}

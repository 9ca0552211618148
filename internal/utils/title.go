package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// IncrementTitle bumps a trailing numeric suffix on a card title, so clones
// get "Experiment 3" -> "Experiment 4". A title with no trailing digits gets
// "1" appended.
func IncrementTitle(title string) string {
	trimmed := strings.TrimRightFunc(title, unicode.IsDigit)
	suffix := title[len(trimmed):]

	if suffix == "" {
		return title + "1"
	}

	n, err := strconv.Atoi(suffix)
	if err != nil {
		// Suffix longer than an int; start over rather than overflow.
		return trimmed + "1"
	}
	return trimmed + strconv.Itoa(n+1)
}

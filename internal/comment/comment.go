// Package comment implements the card comment blob: three labeled sections
// serialized as header lines followed by free text, plus `#`-tag extraction.
package comment

import (
	"fmt"
	"html"
	"strings"
)

// Section header lines as they appear in the stored blob.
const (
	HeaderObserved   = "Observed Process"
	HeaderConditions = "Experimental Conditions"
	HeaderAdditional = "Additional Information"
)

// Sections holds the three logical parts of a card comment.
type Sections struct {
	Observed   string `json:"observed"`
	Conditions string `json:"conditions"`
	Additional string `json:"additional"`
}

// Build serializes the sections into a single comment blob.
func (s Sections) Build() string {
	var b strings.Builder
	b.WriteString(HeaderObserved + "\n")
	b.WriteString(s.Observed + "\n")
	b.WriteString(HeaderConditions + "\n")
	b.WriteString(s.Conditions + "\n")
	b.WriteString(HeaderAdditional + "\n")
	b.WriteString(s.Additional + "\n")
	return b.String()
}

// Parse splits a comment blob back into its sections. Lines before any
// header accumulate into Additional.
func Parse(blob string) Sections {
	var observed, conditions, additional []string
	current := &additional

	for _, line := range strings.Split(blob, "\n") {
		switch strings.TrimSpace(line) {
		case HeaderObserved:
			current = &observed
		case HeaderConditions:
			current = &conditions
		case HeaderAdditional:
			current = &additional
		default:
			*current = append(*current, line)
		}
	}

	return Sections{
		Observed:   strings.TrimRight(strings.Join(observed, "\n"), "\n"),
		Conditions: strings.TrimRight(strings.Join(conditions, "\n"), "\n"),
		Additional: strings.TrimRight(strings.Join(additional, "\n"), "\n"),
	}
}

// ExtractTags returns every whitespace-delimited `#`-prefixed token, with
// the leading `#` stripped, deduplicated in first-seen order. The input is
// never mutated and repeated calls yield the same set.
func ExtractTags(text string) []string {
	seen := make(map[string]struct{})
	tags := []string{}

	for _, token := range strings.Fields(text) {
		if !strings.HasPrefix(token, "#") {
			continue
		}
		tag := strings.TrimPrefix(token, "#")
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}

// HTMLFragment renders the comment for in-page display: sections become
// headers and `#`-tagged tokens are bolded inline.
func HTMLFragment(blob string) string {
	sections := Parse(blob)
	var b strings.Builder

	writeSection(&b, HeaderObserved, sections.Observed)
	writeSection(&b, HeaderConditions, sections.Conditions)
	writeSection(&b, HeaderAdditional, sections.Additional)

	return b.String()
}

func writeSection(b *strings.Builder, header, text string) {
	fmt.Fprintf(b, "<h5>%s</h5>\n", header)
	if strings.TrimSpace(text) == "" {
		return
	}
	fmt.Fprintf(b, "<p>%s</p>\n", highlightTags(text))
}

func highlightTags(text string) string {
	fields := strings.Fields(text)
	for i, token := range fields {
		if strings.HasPrefix(token, "#") && len(token) > 1 {
			fields[i] = "<b>" + html.EscapeString(token) + "</b>"
		} else {
			fields[i] = html.EscapeString(token)
		}
	}
	return strings.Join(fields, " ")
}

package comment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildParseRoundTrip(t *testing.T) {
	sections := Sections{
		Observed:   "Cells divided normally.",
		Conditions: "30C, YPD medium",
		Additional: "See also #mitosis runs.",
	}

	parsed := Parse(sections.Build())
	require.Equal(t, sections, parsed)
}

func TestParsePreHeaderLinesGoToAdditional(t *testing.T) {
	blob := "free text before any header\n" +
		HeaderObserved + "\nobserved body\n"

	parsed := Parse(blob)
	require.Equal(t, "observed body", parsed.Observed)
	require.Equal(t, "free text before any header", parsed.Additional)
	require.Empty(t, parsed.Conditions)
}

func TestParseEmptyBlob(t *testing.T) {
	parsed := Parse("")
	require.Equal(t, Sections{}, parsed)
}

func TestExtractTags(t *testing.T) {
	text := "first #foo then #bar and #foo again, plus a lone #"
	tags := ExtractTags(text)
	require.Equal(t, []string{"foo", "bar"}, tags)

	// Re-extraction over the same text must not grow the set.
	require.Equal(t, tags, ExtractTags(text))
}

func TestExtractTagsNoTags(t *testing.T) {
	require.Empty(t, ExtractTags("no markers anywhere"))
}

func TestHTMLFragment(t *testing.T) {
	sections := Sections{
		Observed:   "saw #division happen",
		Conditions: "25C",
	}

	fragment := HTMLFragment(sections.Build())

	require.Contains(t, fragment, "<h5>"+HeaderObserved+"</h5>")
	require.Contains(t, fragment, "<h5>"+HeaderConditions+"</h5>")
	require.Contains(t, fragment, "<b>#division</b>")
	require.Contains(t, fragment, "25C")
}

func TestHTMLFragmentEscapesMarkup(t *testing.T) {
	sections := Sections{Observed: "<script>alert(1)</script>"}
	fragment := HTMLFragment(sections.Build())
	require.False(t, strings.Contains(fragment, "<script>"))
}

package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeIntentDefaultsToSubmit(t *testing.T) {
	sub := Submission{Title: "Experiment 1"}
	require.Equal(t, IntentSubmit, sub.DecodeIntent())
}

func TestDecodeIntentPriority(t *testing.T) {
	// A submission with every action set decodes to the highest-priority one,
	// and stripping actions one by one walks down the order.
	sub := Submission{
		NewProjectName:   "new project",
		Search:           &SearchAction{Field: FieldOrganism, Term: "yeast"},
		Select:           &SelectAction{Field: FieldOrganism, TermID: "term-1"},
		AddGeneModRow:    true,
		RemoveGeneModRow: true,
		BeginSearchField: FieldSample,
	}

	require.Equal(t, IntentCreateProject, sub.DecodeIntent())

	sub.NewProjectName = ""
	require.Equal(t, IntentSearchTerm, sub.DecodeIntent())

	sub.Search = nil
	require.Equal(t, IntentAcceptSuggestion, sub.DecodeIntent())

	sub.Select = nil
	require.Equal(t, IntentAddRow, sub.DecodeIntent())

	sub.AddGeneModRow = false
	require.Equal(t, IntentRemoveRow, sub.DecodeIntent())

	sub.RemoveGeneModRow = false
	require.Equal(t, IntentBeginSearch, sub.DecodeIntent())

	sub.BeginSearchField = ""
	require.Equal(t, IntentSubmit, sub.DecodeIntent())
}

func TestDecodeIntentIgnoresEmptyActions(t *testing.T) {
	// A search box that was cleared and a selection without a term id are
	// not actions.
	sub := Submission{
		Search: &SearchAction{Field: FieldOrganism, Term: ""},
		Select: &SelectAction{Field: FieldOrganism, TermID: ""},
	}
	require.Equal(t, IntentSubmit, sub.DecodeIntent())
}

func TestFieldNameKind(t *testing.T) {
	for field, valid := range map[FieldName]bool{
		FieldOrganism: true,
		FieldSample:   true,
		FieldProcess:  true,
		FieldMethod:   true,
		FieldGene:     true,
		FieldMarker:   true,
		"project":     false,
	} {
		_, ok := field.Kind()
		require.Equal(t, valid, ok, "field %q", field)
	}
}

package workflow

import (
	"testing"

	"github.com/lab-annotate/cataloger-api/internal/bioportal"
	"github.com/stretchr/testify/require"
)

func TestAddRemoveRow(t *testing.T) {
	state := &FormState{}

	state.AddRow()
	state.AddRow()
	require.Len(t, state.GeneModRows, 2)

	state.RemoveRow()
	require.Len(t, state.GeneModRows, 1)

	state.RemoveRow()
	require.Empty(t, state.GeneModRows)

	// Removing from an empty list is a no-op.
	state.RemoveRow()
	require.Empty(t, state.GeneModRows)
}

func TestSpliceFieldPrependsAndSelects(t *testing.T) {
	state := &FormState{
		OrganismChoices: []Choice{{ID: 1, Label: "E. coli"}, {ID: 2, Label: "S. cerevisiae"}},
	}

	state.SpliceField(FieldOrganism, Choice{ID: 3, Label: "D. melanogaster"})

	require.Equal(t, uint64(3), state.OrganismChoices[0].ID)
	require.Len(t, state.OrganismChoices, 3)
	require.NotNil(t, state.SelectedOrganism)
	require.Equal(t, uint64(3), *state.SelectedOrganism)
}

func TestSpliceFieldDeduplicates(t *testing.T) {
	state := &FormState{
		SampleChoices: []Choice{{ID: 1, Label: "liver"}, {ID: 2, Label: "spleen"}},
	}

	// Re-selecting an existing choice moves it to the front without
	// duplicating it.
	state.SpliceField(FieldSample, Choice{ID: 2, Label: "spleen"})

	require.Len(t, state.SampleChoices, 2)
	require.Equal(t, uint64(2), state.SampleChoices[0].ID)
	require.Equal(t, uint64(1), state.SampleChoices[1].ID)
}

func TestApplySubmissionKeepsFieldValues(t *testing.T) {
	projectID := uint64(7)
	organismID := uint64(3)
	sub := &Submission{
		Title:       "Experiment 12",
		ProjectID:   &projectID,
		OrganismID:  &organismID,
		GeneModRows: []GeneModRow{{GeneID: &organismID}},
	}

	state := &FormState{}
	state.ApplySubmission(sub)

	require.Equal(t, "Experiment 12", state.Title)
	require.Equal(t, &projectID, state.SelectedProject)
	require.Equal(t, &organismID, state.SelectedOrganism)
	require.Len(t, state.GeneModRows, 1)
}

func TestSuggestionCache(t *testing.T) {
	cache := NewSuggestionCache()

	term := bioportal.Term{ID: "term-1", PrefLabel: "mitosis"}
	cache.Put("user-1", map[string]bioportal.Term{"term-1": term})

	got, ok := cache.Get("user-1", "term-1")
	require.True(t, ok)
	require.Equal(t, "mitosis", got.PrefLabel)

	_, ok = cache.Get("user-1", "term-2")
	require.False(t, ok)

	_, ok = cache.Get("user-2", "term-1")
	require.False(t, ok)

	cache.Drop("user-1")
	_, ok = cache.Get("user-1", "term-1")
	require.False(t, ok)
}

func TestSuggestionCachePutReplaces(t *testing.T) {
	cache := NewSuggestionCache()

	cache.Put("user-1", map[string]bioportal.Term{"old": {ID: "old"}})
	cache.Put("user-1", map[string]bioportal.Term{"new": {ID: "new"}})

	_, ok := cache.Get("user-1", "old")
	require.False(t, ok)
	_, ok = cache.Get("user-1", "new")
	require.True(t, ok)
}

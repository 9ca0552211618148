// Package workflow models the multi-purpose card form: a submission is
// decoded once into an explicit intent, then dispatched, instead of a chain
// of button-flag checks inside the handler.
package workflow

import (
	"github.com/lab-annotate/cataloger-api/internal/comment"
	"github.com/lab-annotate/cataloger-api/internal/models"
)

// Intent is what a single form submission asks for. Exactly one intent is
// derived per request, in the fixed priority order of DecodeIntent.
type Intent int

const (
	// IntentSubmit saves the whole card (create or update).
	IntentSubmit Intent = iota
	// IntentCreateProject finds-or-creates a project typed inline.
	IntentCreateProject
	// IntentSearchTerm queries bioportal for one field's search box.
	IntentSearchTerm
	// IntentAcceptSuggestion registers a stashed suggestion locally.
	IntentAcceptSuggestion
	// IntentAddRow appends an empty gene-mod row to the form.
	IntentAddRow
	// IntentRemoveRow pops the last gene-mod row, if any.
	IntentRemoveRow
	// IntentBeginSearch flags a field as the active search target.
	IntentBeginSearch
)

func (i Intent) String() string {
	switch i {
	case IntentSubmit:
		return "submit"
	case IntentCreateProject:
		return "create_project"
	case IntentSearchTerm:
		return "search_term"
	case IntentAcceptSuggestion:
		return "accept_suggestion"
	case IntentAddRow:
		return "add_row"
	case IntentRemoveRow:
		return "remove_row"
	case IntentBeginSearch:
		return "begin_search"
	}
	return "unknown"
}

// FieldName identifies one of the searchable term fields on the card form.
type FieldName string

const (
	FieldOrganism FieldName = "organism"
	FieldSample   FieldName = "sample"
	FieldProcess  FieldName = "process"
	FieldMethod   FieldName = "method"
	FieldGene     FieldName = "gene"
	FieldMarker   FieldName = "marker"
)

// Kind maps the form field to its annotation table.
func (f FieldName) Kind() (models.AnnotationKind, bool) {
	switch f {
	case FieldOrganism:
		return models.KindOrganism, true
	case FieldSample:
		return models.KindSample, true
	case FieldProcess:
		return models.KindProcess, true
	case FieldMethod:
		return models.KindMethod, true
	case FieldGene:
		return models.KindGene, true
	case FieldMarker:
		return models.KindMarker, true
	}
	return "", false
}

// GeneModRow is one repeatable (gene, marker) row of the form.
type GeneModRow struct {
	GeneID   *uint64 `json:"gene_id"`
	MarkerID *uint64 `json:"marker_id"`
}

// SearchAction is a per-field ontology search request.
type SearchAction struct {
	Field FieldName `json:"field"`
	Term  string    `json:"term"`
}

// SelectAction accepts one stashed suggestion for a field. Row addresses
// the repeatable gene-mod row for gene/marker fields.
type SelectAction struct {
	Field  FieldName `json:"field"`
	TermID string    `json:"term_id"`
	Row    int       `json:"row"`
}

// Submission is the decoded body of a card form POST: every field value
// plus whichever action buttons were pressed.
type Submission struct {
	Title    string           `json:"title"`
	Sections comment.Sections `json:"sections"`

	ProjectID  *uint64 `json:"project_id"`
	OrganismID *uint64 `json:"organism_id"`
	SampleID   *uint64 `json:"sample_id"`
	ProcessID  *uint64 `json:"process_id"`
	MethodID   *uint64 `json:"method_id"`

	GeneModRows []GeneModRow `json:"gene_mod_rows"`

	NewProjectName    string        `json:"new_project_name"`
	Search            *SearchAction `json:"search,omitempty"`
	Select            *SelectAction `json:"select,omitempty"`
	AddGeneModRow     bool          `json:"add_gene_mod_row"`
	RemoveGeneModRow  bool          `json:"remove_gene_mod_row"`
	BeginSearchField  FieldName     `json:"begin_search_field"`
}

// DecodeIntent derives the single intent of a submission. The priority
// order is fixed: inline project creation wins over a pending search, a
// search over a selection, row mutations over the begin-search toggle, and
// a plain POST with no buttons set is a final submit.
func (s *Submission) DecodeIntent() Intent {
	switch {
	case s.NewProjectName != "":
		return IntentCreateProject
	case s.Search != nil && s.Search.Term != "":
		return IntentSearchTerm
	case s.Select != nil && s.Select.TermID != "":
		return IntentAcceptSuggestion
	case s.AddGeneModRow:
		return IntentAddRow
	case s.RemoveGeneModRow:
		return IntentRemoveRow
	case s.BeginSearchField != "":
		return IntentBeginSearch
	default:
		return IntentSubmit
	}
}

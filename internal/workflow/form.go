package workflow

import (
	"fmt"

	"github.com/lab-annotate/cataloger-api/internal/comment"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/services"
)

// Choice is one entry of a form choice list.
type Choice struct {
	ID    uint64 `json:"id"`
	Label string `json:"label"`
}

// SuggestionChoice is one formatted ontology suggestion, keyed by the
// external term identifier it was stashed under.
type SuggestionChoice struct {
	TermID string `json:"term_id"`
	Label  string `json:"label"`
}

// FormState is the card form view-model sent back to the client: what the
// in-flight form currently shows, as opposed to what the database contains.
type FormState struct {
	CardID   *uint64          `json:"card_id,omitempty"`
	Title    string           `json:"title"`
	Sections comment.Sections `json:"sections"`

	ProjectChoices  []Choice `json:"project_choices"`
	SelectedProject *uint64  `json:"selected_project"`

	OrganismChoices  []Choice `json:"organism_choices"`
	SelectedOrganism *uint64  `json:"selected_organism"`
	SampleChoices    []Choice `json:"sample_choices"`
	SelectedSample   *uint64  `json:"selected_sample"`
	ProcessChoices   []Choice `json:"process_choices"`
	SelectedProcess  *uint64  `json:"selected_process"`
	MethodChoices    []Choice `json:"method_choices"`
	SelectedMethod   *uint64  `json:"selected_method"`

	GeneChoices    []Choice     `json:"gene_choices"`
	MarkerChoices  []Choice     `json:"marker_choices"`
	GeneModChoices []Choice     `json:"gene_mod_choices"`
	GeneModRows    []GeneModRow `json:"gene_mod_rows"`

	TagChoices []string `json:"tag_choices"`

	ActiveSearchField FieldName          `json:"active_search_field,omitempty"`
	Suggestions       []SuggestionChoice `json:"suggestions,omitempty"`

	Notice string `json:"notice,omitempty"`
}

// FormBuilder hydrates form states from the database. The explicit refresh
// and splice steps keep the database contents and the in-flight form
// decoupled.
type FormBuilder struct {
	annotations *services.AnnotationService
	projects    *services.ProjectService
	geneMods    *services.GeneModService
	cards       *services.CardService
}

// NewFormBuilder creates a FormBuilder.
func NewFormBuilder(annotations *services.AnnotationService, projects *services.ProjectService, geneMods *services.GeneModService, cards *services.CardService) *FormBuilder {
	return &FormBuilder{
		annotations: annotations,
		projects:    projects,
		geneMods:    geneMods,
		cards:       cards,
	}
}

// Refresh builds a form state with every choice list loaded fresh for the
// actor's group.
func (b *FormBuilder) Refresh(actor *models.User) (*FormState, error) {
	state := &FormState{GeneModRows: []GeneModRow{}}

	projects, err := b.projects.ListForGroup(actor.GroupID)
	if err != nil {
		return nil, err
	}
	state.ProjectChoices = make([]Choice, 0, len(projects))
	for _, p := range projects {
		state.ProjectChoices = append(state.ProjectChoices, Choice{ID: p.ID, Label: p.Name})
	}

	for _, kind := range models.AnnotationKinds {
		rows, err := b.annotations.ListChoices(kind, actor.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s choices: %w", kind, err)
		}
		choices := make([]Choice, 0, len(rows))
		for _, row := range rows {
			choices = append(choices, Choice{ID: row.ID, Label: row.Label})
		}
		switch kind {
		case models.KindOrganism:
			state.OrganismChoices = choices
		case models.KindSample:
			state.SampleChoices = choices
		case models.KindProcess:
			state.ProcessChoices = choices
		case models.KindMethod:
			state.MethodChoices = choices
		case models.KindMarker:
			state.MarkerChoices = choices
		case models.KindGene:
			state.GeneChoices = choices
		}
	}

	geneMods, err := b.geneMods.ListChoices(actor.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load gene mod choices: %w", err)
	}
	state.GeneModChoices = make([]Choice, 0, len(geneMods))
	for _, gm := range geneMods {
		state.GeneModChoices = append(state.GeneModChoices, Choice{ID: gm.ID, Label: gm.Label})
	}

	tags, err := b.cards.ListTags(actor.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tag choices: %w", err)
	}
	state.TagChoices = make([]string, 0, len(tags))
	for _, tag := range tags {
		state.TagChoices = append(state.TagChoices, tag.Label)
	}

	return state, nil
}

// ApplySubmission copies the submission's field values onto the state, so a
// re-rendered form keeps what the user already picked.
func (s *FormState) ApplySubmission(sub *Submission) {
	s.Title = sub.Title
	s.Sections = sub.Sections
	s.SelectedProject = sub.ProjectID
	s.SelectedOrganism = sub.OrganismID
	s.SelectedSample = sub.SampleID
	s.SelectedProcess = sub.ProcessID
	s.SelectedMethod = sub.MethodID
	if sub.GeneModRows != nil {
		s.GeneModRows = sub.GeneModRows
	}
}

// LoadCard fills the state from a persisted card, splicing each current
// value to the front of its choice list so the selection stays visible even
// when the group scope would have filtered it out.
func (s *FormState) LoadCard(card *models.Card) {
	cardID := card.ID
	s.CardID = &cardID
	s.Title = card.Title
	s.Sections = comment.Parse(card.Comment)

	if card.Project != nil {
		s.ProjectChoices = spliceFront(s.ProjectChoices, Choice{ID: card.Project.ID, Label: card.Project.Name})
		s.SelectedProject = card.ProjectID
	}
	if card.Organism != nil {
		s.OrganismChoices = spliceFront(s.OrganismChoices, Choice{ID: card.Organism.ID, Label: card.Organism.Label})
		s.SelectedOrganism = card.OrganismID
	}
	if card.Sample != nil {
		s.SampleChoices = spliceFront(s.SampleChoices, Choice{ID: card.Sample.ID, Label: card.Sample.Label})
		s.SelectedSample = card.SampleID
	}
	if card.Process != nil {
		s.ProcessChoices = spliceFront(s.ProcessChoices, Choice{ID: card.Process.ID, Label: card.Process.Label})
		s.SelectedProcess = card.ProcessID
	}
	if card.Method != nil {
		s.MethodChoices = spliceFront(s.MethodChoices, Choice{ID: card.Method.ID, Label: card.Method.Label})
		s.SelectedMethod = card.MethodID
	}

	s.GeneModRows = make([]GeneModRow, 0, len(card.GeneMods))
	for _, gm := range card.GeneMods {
		s.GeneModRows = append(s.GeneModRows, GeneModRow{GeneID: gm.GeneID, MarkerID: gm.MarkerID})
	}
}

// SpliceField prepends a freshly created or selected choice to the field's
// list and marks it selected.
func (s *FormState) SpliceField(field FieldName, choice Choice) {
	id := choice.ID
	switch field {
	case FieldOrganism:
		s.OrganismChoices = spliceFront(s.OrganismChoices, choice)
		s.SelectedOrganism = &id
	case FieldSample:
		s.SampleChoices = spliceFront(s.SampleChoices, choice)
		s.SelectedSample = &id
	case FieldProcess:
		s.ProcessChoices = spliceFront(s.ProcessChoices, choice)
		s.SelectedProcess = &id
	case FieldMethod:
		s.MethodChoices = spliceFront(s.MethodChoices, choice)
		s.SelectedMethod = &id
	case FieldGene:
		s.GeneChoices = spliceFront(s.GeneChoices, choice)
	case FieldMarker:
		s.MarkerChoices = spliceFront(s.MarkerChoices, choice)
	}
}

// SpliceProject prepends a project to the project choice list and selects it.
func (s *FormState) SpliceProject(project *models.Project) {
	id := project.ID
	s.ProjectChoices = spliceFront(s.ProjectChoices, Choice{ID: project.ID, Label: project.Name})
	s.SelectedProject = &id
}

// AddRow appends an empty gene-mod row.
func (s *FormState) AddRow() {
	s.GeneModRows = append(s.GeneModRows, GeneModRow{})
}

// RemoveRow pops the last gene-mod row; removing from an empty list is a
// no-op.
func (s *FormState) RemoveRow() {
	if len(s.GeneModRows) == 0 {
		return
	}
	s.GeneModRows = s.GeneModRows[:len(s.GeneModRows)-1]
}

func spliceFront(choices []Choice, choice Choice) []Choice {
	rest := make([]Choice, 0, len(choices))
	for _, c := range choices {
		if c.ID != choice.ID {
			rest = append(rest, c)
		}
	}
	return append([]Choice{choice}, rest...)
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lab-annotate/cataloger-api/internal/bioportal"
	"github.com/lab-annotate/cataloger-api/internal/dto"
	apierrors "github.com/lab-annotate/cataloger-api/internal/errors"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/services"
	"github.com/lab-annotate/cataloger-api/internal/workflow"
	"github.com/rs/zerolog"
)

// CardFormHandler drives the multi-purpose card form. Every POST carries
// the full form plus at most one action; the decoded intent picks the
// branch and the response is the re-hydrated form state (or, on final
// submit, the saved card).
type CardFormHandler struct {
	formBuilder       *workflow.FormBuilder
	cardService       *services.CardService
	projectService    *services.ProjectService
	annotationService *services.AnnotationService
	geneModService    *services.GeneModService
	authService       *services.AuthService
	bioportalClient   *bioportal.Client
	suggestions       *workflow.SuggestionCache
	logger            zerolog.Logger
}

// NewCardFormHandler creates a new CardFormHandler.
func NewCardFormHandler(
	formBuilder *workflow.FormBuilder,
	cardService *services.CardService,
	projectService *services.ProjectService,
	annotationService *services.AnnotationService,
	geneModService *services.GeneModService,
	authService *services.AuthService,
	bioportalClient *bioportal.Client,
	suggestions *workflow.SuggestionCache,
	logger zerolog.Logger,
) *CardFormHandler {
	return &CardFormHandler{
		formBuilder:       formBuilder,
		cardService:       cardService,
		projectService:    projectService,
		annotationService: annotationService,
		geneModService:    geneModService,
		authService:       authService,
		bioportalClient:   bioportalClient,
		suggestions:       suggestions,
		logger:            logger,
	}
}

// NewForm returns a fresh create-form state with every choice list loaded.
func (h *CardFormHandler) NewForm(c *gin.Context) {
	actor, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	state, err := h.formBuilder.Refresh(actor)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, state)
}

// EditForm returns the form state pre-filled from an existing card, with
// the persisted selections spliced to the front of their choice lists.
func (h *CardFormHandler) EditForm(c *gin.Context) {
	actor, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	cardID, ok := h.cardIDParam(c)
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(cardID)
	if err != nil {
		h.respondFormError(c, err)
		return
	}

	state, err := h.formBuilder.Refresh(actor)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	state.LoadCard(card)

	c.JSON(http.StatusOK, state)
}

// SubmitNew handles a POST of the create form.
func (h *CardFormHandler) SubmitNew(c *gin.Context) {
	h.handleSubmission(c, nil)
}

// SubmitEdit handles a POST of the edit form.
func (h *CardFormHandler) SubmitEdit(c *gin.Context) {
	cardID, ok := h.cardIDParam(c)
	if !ok {
		return
	}
	h.handleSubmission(c, &cardID)
}

func (h *CardFormHandler) handleSubmission(c *gin.Context, cardID *uint64) {
	actor, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	var sub workflow.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	intent := sub.DecodeIntent()
	h.logger.Debug().Str("intent", intent.String()).Uint64("user_id", actor.ID).
		Msg("card form submission")

	if intent == workflow.IntentSubmit {
		h.saveCard(c, &sub, cardID, actor)
		return
	}

	state, err := h.formBuilder.Refresh(actor)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	state.ApplySubmission(&sub)
	state.CardID = cardID

	switch intent {
	case workflow.IntentCreateProject:
		h.createProject(c, state, &sub, cardID, actor)
	case workflow.IntentSearchTerm:
		h.searchTerm(c, state, &sub, actor)
	case workflow.IntentAcceptSuggestion:
		h.acceptSuggestion(c, state, &sub, cardID, actor)
	case workflow.IntentAddRow:
		state.AddRow()
		c.JSON(http.StatusOK, state)
	case workflow.IntentRemoveRow:
		state.RemoveRow()
		c.JSON(http.StatusOK, state)
	case workflow.IntentBeginSearch:
		state.ActiveSearchField = sub.BeginSearchField
		c.JSON(http.StatusOK, state)
	default:
		apierrors.BadRequest(c, "Unrecognized form action")
	}
}

// createProject finds-or-creates the inline project and selects it. When
// editing, the card is pointed at the project immediately.
func (h *CardFormHandler) createProject(c *gin.Context, state *workflow.FormState, sub *workflow.Submission, cardID *uint64, actor *models.User) {
	project, err := h.projectService.FindOrCreate(sub.NewProjectName, "", actor)
	if err != nil {
		if errors.Is(err, services.ErrInvalidProjectName) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if cardID != nil {
		if _, err := h.cardService.SetProject(*cardID, project.ID, actor); err != nil {
			h.respondFormError(c, err)
			return
		}
	}

	state.SpliceProject(project)
	state.Notice = fmt.Sprintf("New project %s created", project.Name)
	c.JSON(http.StatusOK, state)
}

// searchTerm queries bioportal, stashes the raw results for the accept
// step and returns the formatted suggestions.
func (h *CardFormHandler) searchTerm(c *gin.Context, state *workflow.FormState, sub *workflow.Submission, actor *models.User) {
	field := sub.Search.Field
	if _, ok := field.Kind(); !ok {
		apierrors.BadRequest(c, "Unknown search field")
		return
	}

	terms, err := h.bioportalClient.Search(c.Request.Context(), sub.Search.Term)
	if err != nil {
		if errors.Is(err, bioportal.ErrNoResults) {
			state.ActiveSearchField = field
			state.Notice = "Nothing found, please reformulate your search."
			c.JSON(http.StatusOK, state)
			return
		}
		h.logger.Error().Err(err).Str("term", sub.Search.Term).Msg("bioportal search failed")
		apierrors.BadGateway(c, "Ontology search is unavailable")
		return
	}

	h.suggestions.Put(sessionKey(actor), terms)

	state.ActiveSearchField = field
	state.Suggestions = make([]workflow.SuggestionChoice, 0, len(terms))
	for termID, term := range terms {
		state.Suggestions = append(state.Suggestions, workflow.SuggestionChoice{
			TermID: termID,
			Label:  bioportal.FormatLabel(term),
		})
	}

	c.JSON(http.StatusOK, state)
}

// acceptSuggestion registers the stashed term as a local annotation row
// and splices it into the field's choice list. When editing, scalar
// annotations are persisted on the card immediately; accepted gene or
// marker terms resolve into a gene mod appended to the card.
func (h *CardFormHandler) acceptSuggestion(c *gin.Context, state *workflow.FormState, sub *workflow.Submission, cardID *uint64, actor *models.User) {
	field := sub.Select.Field
	kind, ok := field.Kind()
	if !ok {
		apierrors.BadRequest(c, "Unknown annotation field")
		return
	}

	term, found := h.suggestions.Get(sessionKey(actor), sub.Select.TermID)
	if !found {
		apierrors.BadRequest(c, "Suggestion expired, please search again")
		return
	}

	var organismID *uint64
	if kind != models.KindOrganism {
		organismID = sub.OrganismID
	}

	row, err := h.annotationService.AcceptSuggestion(kind, term, actor, organismID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	h.suggestions.Drop(sessionKey(actor))

	state.SpliceField(field, workflow.Choice{ID: row.ID, Label: row.Label})
	state.ActiveSearchField = ""
	state.Suggestions = nil

	switch field {
	case workflow.FieldGene, workflow.FieldMarker:
		h.applyGeneModSelection(c, state, sub, cardID, field, row, actor)
		return
	default:
		if cardID != nil {
			if _, err := h.cardService.SetAnnotation(*cardID, kind, row.ID, actor); err != nil {
				h.respondFormError(c, err)
				return
			}
		}
	}

	c.JSON(http.StatusOK, state)
}

// applyGeneModSelection wires an accepted gene or marker term into the
// addressed gene-mod row, and on the edit path resolves and appends the
// pair to the card.
func (h *CardFormHandler) applyGeneModSelection(c *gin.Context, state *workflow.FormState, sub *workflow.Submission, cardID *uint64, field workflow.FieldName, row *models.AnnotationRow, actor *models.User) {
	rowIndex := sub.Select.Row
	for len(state.GeneModRows) <= rowIndex {
		state.GeneModRows = append(state.GeneModRows, workflow.GeneModRow{})
	}

	id := row.ID
	if field == workflow.FieldGene {
		state.GeneModRows[rowIndex].GeneID = &id
	} else {
		state.GeneModRows[rowIndex].MarkerID = &id
	}

	if cardID != nil {
		pair := state.GeneModRows[rowIndex]
		geneMod, err := h.geneModService.Resolve(pair.GeneID, pair.MarkerID)
		if err != nil {
			apierrors.InternalError(c, "")
			return
		}
		if geneMod != nil {
			if _, err := h.cardService.AppendGeneMod(*cardID, *geneMod, actor); err != nil {
				h.respondFormError(c, err)
				return
			}
		}
	}

	c.JSON(http.StatusOK, state)
}

// saveCard is the final submit: the comment blob is assembled from the
// three sections, every gene-mod row is resolved (half-empty rows keep a
// dangling side, fully empty rows are dropped) and the card is created or
// updated.
func (h *CardFormHandler) saveCard(c *gin.Context, sub *workflow.Submission, cardID *uint64, actor *models.User) {
	geneMods := make([]models.GeneMod, 0, len(sub.GeneModRows))
	for _, pair := range sub.GeneModRows {
		geneMod, err := h.geneModService.Resolve(pair.GeneID, pair.MarkerID)
		if err != nil {
			apierrors.InternalError(c, "")
			return
		}
		if geneMod != nil {
			geneMods = append(geneMods, *geneMod)
		}
	}

	input := services.CardInput{
		Title:      sub.Title,
		Comment:    sub.Sections.Build(),
		ProjectID:  sub.ProjectID,
		OrganismID: sub.OrganismID,
		SampleID:   sub.SampleID,
		ProcessID:  sub.ProcessID,
		MethodID:   sub.MethodID,
		GeneMods:   geneMods,
	}

	if cardID != nil {
		card, err := h.cardService.UpdateCard(*cardID, input, actor)
		if err != nil {
			h.respondFormError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"card":   dto.ToCardDTO(*card),
			"notice": "Card updated.",
		})
		return
	}

	card, err := h.cardService.CreateCard(input, actor)
	if err != nil {
		h.respondFormError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"card":   dto.ToCardDTO(*card),
		"notice": "New card created.",
	})
}

func (h *CardFormHandler) cardIDParam(c *gin.Context) (uint64, bool) {
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid card ID")
		return 0, false
	}
	return cardID, true
}

func (h *CardFormHandler) respondFormError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotCardOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCardTitleMissing):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCardCreateFailed):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// sessionKey identifies the suggestion stash owner. One stash per user
// matches the one-form-at-a-time assumption of the form.
func sessionKey(actor *models.User) string {
	return strconv.FormatUint(actor.ID, 10)
}

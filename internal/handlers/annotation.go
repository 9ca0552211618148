package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lab-annotate/cataloger-api/internal/bioportal"
	"github.com/lab-annotate/cataloger-api/internal/dto"
	apierrors "github.com/lab-annotate/cataloger-api/internal/errors"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/services"
	"github.com/lab-annotate/cataloger-api/internal/workflow"
	"github.com/rs/zerolog"
)

// AnnotationHandler serves the controlled-vocabulary tables and the
// ontology search endpoint.
type AnnotationHandler struct {
	annotationService *services.AnnotationService
	authService       *services.AuthService
	bioportalClient   *bioportal.Client
	suggestions       *workflow.SuggestionCache
	logger            zerolog.Logger
}

// NewAnnotationHandler creates a new AnnotationHandler.
func NewAnnotationHandler(annotationService *services.AnnotationService, authService *services.AuthService, bioportalClient *bioportal.Client, suggestions *workflow.SuggestionCache, logger zerolog.Logger) *AnnotationHandler {
	return &AnnotationHandler{
		annotationService: annotationService,
		authService:       authService,
		bioportalClient:   bioportalClient,
		suggestions:       suggestions,
		logger:            logger,
	}
}

// ListByKind returns the annotation rows of one kind visible to the
// current user's group.
func (h *AnnotationHandler) ListByKind(c *gin.Context) {
	kind := models.AnnotationKind(c.Param("kind"))
	if !kind.Valid() {
		apierrors.NotFound(c, "Unknown annotation kind")
		return
	}

	actor, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	rows, err := h.annotationService.ListChoices(kind, actor.GroupID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	annotationDTOs := make([]dto.AnnotationDTO, len(rows))
	for i, row := range rows {
		annotationDTOs[i] = dto.ToAnnotationDTO(row)
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":        kind,
		"annotations": annotationDTOs,
	})
}

// Search proxies a term query to bioportal, stashes the raw results so a
// later accept can register one, and returns the formatted suggestions.
// An empty result set is not an error: the client gets a warning notice
// and an empty list so the user can reformulate.
func (h *AnnotationHandler) Search(c *gin.Context) {
	type SearchRequest struct {
		Term string `json:"term" binding:"required"`
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actor, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	terms, err := h.bioportalClient.Search(c.Request.Context(), req.Term)
	if err != nil {
		if errors.Is(err, bioportal.ErrNoResults) {
			c.JSON(http.StatusOK, gin.H{
				"suggestions": []gin.H{},
				"notice":      "Nothing found, please reformulate your search.",
			})
			return
		}
		h.logger.Error().Err(err).Str("term", req.Term).Msg("bioportal search failed")
		apierrors.BadGateway(c, "Ontology search is unavailable")
		return
	}

	h.suggestions.Put(sessionKey(actor), terms)

	suggestions := make([]gin.H, 0, len(terms))
	for termID, term := range terms {
		suggestions = append(suggestions, gin.H{
			"term_id": termID,
			"label":   bioportal.FormatLabel(term),
		})
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

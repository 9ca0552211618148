package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lab-annotate/cataloger-api/internal/comment"
	"github.com/lab-annotate/cataloger-api/internal/constants"
	"github.com/lab-annotate/cataloger-api/internal/dto"
	apierrors "github.com/lab-annotate/cataloger-api/internal/errors"
	"github.com/lab-annotate/cataloger-api/internal/export"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/services"
	"github.com/lab-annotate/cataloger-api/internal/utils"
)

// CardHandler serves card reads, deletion, cloning and the export
// endpoints. Card creation and editing go through the form workflow in
// CardFormHandler.
type CardHandler struct {
	cardService *services.CardService
	authService *services.AuthService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *services.CardService, authService *services.AuthService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		authService: authService,
	}
}

// ListCards returns cards in the requested scope: the caller's own cards,
// the caller's group (default), or everything.
func (h *CardHandler) ListCards(c *gin.Context) {
	actor, ok := currentUser(c, h.authService)
	if !ok {
		return
	}

	scope := services.ListScope(c.DefaultQuery("scope", string(services.ScopeGroup)))
	params := utils.GetPaginationParams(c)

	cards, total, err := h.cardService.ListCards(scope, actor, params.Page, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToCardListResponse(cards, params.Page, params.Limit, total))
}

// GetCard returns one card with its related data.
func (h *CardHandler) GetCard(c *gin.Context) {
	card, ok := h.fullCard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToCardDTO(*card))
}

// DeleteCard removes the card. Reaching here means RequireCardOwner
// already passed.
func (h *CardHandler) DeleteCard(c *gin.Context) {
	card, actor, ok := h.loadedCardAndUser(c)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(card.ID, actor); err != nil {
		h.respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notice": "Card deleted."})
}

// CloneCard deep-copies the card for the current user, bumping the title
// suffix. Any group member with read access may clone.
func (h *CardHandler) CloneCard(c *gin.Context) {
	card, actor, ok := h.loadedCardAndUser(c)
	if !ok {
		return
	}

	cloned, err := h.cardService.CloneCard(card.ID, actor)
	if err != nil {
		h.respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"card":   dto.ToCardDTO(*cloned),
		"notice": fmt.Sprintf("Card cloned as %s.", cloned.Title),
	})
}

// GetComment renders the card comment as an HTML fragment with section
// headers and highlighted tags.
func (h *CardHandler) GetComment(c *gin.Context) {
	card, ok := h.loadedCard(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(comment.HTMLFragment(card.Comment)))
}

// Download serves the card as a TOML annotation file attachment.
func (h *CardHandler) Download(c *gin.Context) {
	card, ok := h.fullCard(c)
	if !ok {
		return
	}

	body, err := export.AsTOML(card)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(card, "toml")))
	c.Data(http.StatusOK, "application/toml", []byte(body))
}

// ExportCSV serves the card as CSV.
func (h *CardHandler) ExportCSV(c *gin.Context) {
	card, ok := h.fullCard(c)
	if !ok {
		return
	}

	body, err := export.AsCSV(card)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(card, "csv")))
	c.Data(http.StatusOK, "text/csv", []byte(body))
}

// ExportMarkdown serves the card as a Markdown document.
func (h *CardHandler) ExportMarkdown(c *gin.Context) {
	card, ok := h.fullCard(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(export.AsMarkdown(card)))
}

// Print serves the card as a printable PDF attachment.
func (h *CardHandler) Print(c *gin.Context) {
	card, ok := h.fullCard(c)
	if !ok {
		return
	}

	body, err := export.AsPDF(card)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(card, "pdf")))
	c.Data(http.StatusOK, "application/pdf", body)
}

// loadedCardAndUser reads the card and user stashed by RequireCardAccess.
func (h *CardHandler) loadedCardAndUser(c *gin.Context) (*models.Card, *models.User, bool) {
	cardValue, exists := c.Get(constants.ContextKeyCard)
	if !exists {
		apierrors.InternalError(c, "Card not loaded")
		return nil, nil, false
	}
	card, ok := cardValue.(models.Card)
	if !ok {
		apierrors.InternalError(c, "Invalid card data")
		return nil, nil, false
	}

	userValue, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		apierrors.InternalError(c, "User not loaded")
		return nil, nil, false
	}
	user, ok := userValue.(models.User)
	if !ok {
		apierrors.InternalError(c, "Invalid user data")
		return nil, nil, false
	}

	return &card, &user, true
}

// fullCard reloads the access-checked card with every relation needed by
// the renderers.
func (h *CardHandler) fullCard(c *gin.Context) (*models.Card, bool) {
	card, ok := h.loadedCard(c)
	if !ok {
		return nil, false
	}

	full, err := h.cardService.GetCard(card.ID)
	if err != nil {
		h.respondCardError(c, err)
		return nil, false
	}
	return full, true
}

func (h *CardHandler) loadedCard(c *gin.Context) (*models.Card, bool) {
	card, _, ok := h.loadedCardAndUser(c)
	return card, ok
}

func (h *CardHandler) respondCardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotCardOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCardTitleMissing):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

package services

import (
	"errors"
	"fmt"

	"github.com/lab-annotate/cataloger-api/internal/comment"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/repository"
	"github.com/lab-annotate/cataloger-api/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrCardNotFound     = errors.New("card not found")
	ErrNotCardOwner     = errors.New("only the card owner can perform this action")
	ErrCardTitleMissing = errors.New("card title is required")
	ErrCardCreateFailed = errors.New("card creation failed")
)

// ListScope selects which cards a list request returns.
type ListScope string

const (
	ScopeUser  ListScope = "user"
	ScopeGroup ListScope = "group"
	ScopeAll   ListScope = "all"
)

// CardService handles card business logic.
type CardService struct {
	cardRepo repository.CardRepository
	tagRepo  repository.TagRepository
	logger   zerolog.Logger
}

// NewCardService creates a new CardService.
func NewCardService(cardRepo repository.CardRepository, tagRepo repository.TagRepository, logger zerolog.Logger) *CardService {
	return &CardService{
		cardRepo: cardRepo,
		tagRepo:  tagRepo,
		logger:   logger,
	}
}

// CardInput carries the scalar field values of a card submission. Gene mods
// arrive already resolved by the workflow.
type CardInput struct {
	Title      string
	Comment    string
	ProjectID  *uint64
	OrganismID *uint64
	SampleID   *uint64
	ProcessID  *uint64
	MethodID   *uint64
	GeneMods   []models.GeneMod
}

// CreateCard persists a new card owned by the actor. A persistence failure
// is logged and surfaced as ErrCardCreateFailed.
func (s *CardService) CreateCard(input CardInput, actor *models.User) (*models.Card, error) {
	if input.Title == "" {
		return nil, ErrCardTitleMissing
	}

	card := &models.Card{
		Title:      input.Title,
		Comment:    input.Comment,
		UserID:     actor.ID,
		GroupID:    actor.GroupID,
		ProjectID:  input.ProjectID,
		OrganismID: input.OrganismID,
		SampleID:   input.SampleID,
		ProcessID:  input.ProcessID,
		MethodID:   input.MethodID,
	}

	if err := s.cardRepo.Create(card); err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Uint64("user_id", actor.ID).
			Msg("card creation failed")
		return nil, ErrCardCreateFailed
	}

	if len(input.GeneMods) > 0 {
		if err := s.cardRepo.ReplaceGeneMods(card, input.GeneMods); err != nil {
			s.logger.Error().Err(err).Uint64("card_id", card.ID).Msg("failed to attach gene mods")
			return nil, ErrCardCreateFailed
		}
	}

	return s.cardRepo.FindByID(card.ID, models.CardPreloads...)
}

// UpdateCard replaces the card's fields and gene-mod list, then syncs the
// group's tag table from the comment. Tag sync is append-only.
func (s *CardService) UpdateCard(cardID uint64, input CardInput, actor *models.User) (*models.Card, error) {
	card, err := s.findOwned(cardID, actor)
	if err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, ErrCardTitleMissing
	}

	card.Title = input.Title
	card.Comment = input.Comment
	card.ProjectID = input.ProjectID
	card.OrganismID = input.OrganismID
	card.SampleID = input.SampleID
	card.ProcessID = input.ProcessID
	card.MethodID = input.MethodID

	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	if err := s.cardRepo.ReplaceGeneMods(card, input.GeneMods); err != nil {
		return nil, fmt.Errorf("failed to update gene mods: %w", err)
	}

	if tags := comment.ExtractTags(input.Comment); len(tags) > 0 {
		if err := s.tagRepo.CreateMissing(tags, actor.GroupID); err != nil {
			return nil, fmt.Errorf("failed to sync tags: %w", err)
		}
	}

	return s.cardRepo.FindByID(card.ID, models.CardPreloads...)
}

// SetProject points the card at a project without touching other fields.
// Used when a project is created inline from the edit form.
func (s *CardService) SetProject(cardID uint64, projectID uint64, actor *models.User) (*models.Card, error) {
	card, err := s.findOwned(cardID, actor)
	if err != nil {
		return nil, err
	}

	card.ProjectID = &projectID
	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to set card project: %w", err)
	}
	return card, nil
}

// SetAnnotation persists a single scalar annotation association on the
// card, immediately after a suggestion is accepted in the edit flow.
func (s *CardService) SetAnnotation(cardID uint64, kind models.AnnotationKind, annotationID uint64, actor *models.User) (*models.Card, error) {
	card, err := s.findOwned(cardID, actor)
	if err != nil {
		return nil, err
	}

	switch kind {
	case models.KindOrganism:
		card.OrganismID = &annotationID
	case models.KindSample:
		card.SampleID = &annotationID
	case models.KindProcess:
		card.ProcessID = &annotationID
	case models.KindMethod:
		card.MethodID = &annotationID
	default:
		return nil, ErrUnknownAnnotationKind
	}

	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to set card annotation: %w", err)
	}
	return card, nil
}

// AppendGeneMod adds a resolved gene mod to the card's list.
func (s *CardService) AppendGeneMod(cardID uint64, geneMod models.GeneMod, actor *models.User) (*models.Card, error) {
	card, err := s.findOwned(cardID, actor)
	if err != nil {
		return nil, err
	}

	loaded, err := s.cardRepo.FindByID(cardID, "GeneMods")
	if err != nil {
		return nil, fmt.Errorf("failed to load gene mods: %w", err)
	}
	for _, existing := range loaded.GeneMods {
		if existing.ID == geneMod.ID {
			return card, nil
		}
	}

	geneMods := append(loaded.GeneMods, geneMod)
	if err := s.cardRepo.ReplaceGeneMods(card, geneMods); err != nil {
		return nil, fmt.Errorf("failed to append gene mod: %w", err)
	}
	return card, nil
}

// GetCard returns a card with related data.
func (s *CardService) GetCard(cardID uint64) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(cardID, models.CardPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

// ListCards returns cards in the requested scope. The default scope is the
// actor's group.
func (s *CardService) ListCards(scope ListScope, actor *models.User, page, pageSize int) ([]models.Card, int64, error) {
	filter := repository.CardFilter{Page: page, PageSize: pageSize}

	switch scope {
	case ScopeUser:
		userID := actor.ID
		filter.UserID = &userID
	case ScopeAll:
		// no constraint
	default:
		filter.GroupID = actor.GroupID
	}

	cards, total, err := s.cardRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, total, nil
}

// ListTags returns the group's recorded tags, for the form's tag hints.
func (s *CardService) ListTags(groupID *uint64) ([]models.Tag, error) {
	tags, err := s.tagRepo.ListByGroup(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// DeleteCard deletes a card if the actor owns it.
func (s *CardService) DeleteCard(cardID uint64, actor *models.User) error {
	if _, err := s.findOwned(cardID, actor); err != nil {
		return err
	}

	if err := s.cardRepo.Delete(cardID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// CloneCard deep-copies a card for the actor, bumping the numeric suffix on
// the title. Scalar annotation references and the gene-mod list are shared,
// not duplicated.
func (s *CardService) CloneCard(cardID uint64, actor *models.User) (*models.Card, error) {
	source, err := s.cardRepo.FindByID(cardID, "GeneMods")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	cloned := &models.Card{
		Title:      utils.IncrementTitle(source.Title),
		Comment:    source.Comment,
		UserID:     actor.ID,
		GroupID:    actor.GroupID,
		ProjectID:  source.ProjectID,
		OrganismID: source.OrganismID,
		SampleID:   source.SampleID,
		ProcessID:  source.ProcessID,
		MethodID:   source.MethodID,
	}

	if err := s.cardRepo.Create(cloned); err != nil {
		s.logger.Error().Err(err).Uint64("source_card_id", cardID).Msg("card clone failed")
		return nil, ErrCardCreateFailed
	}

	if len(source.GeneMods) > 0 {
		if err := s.cardRepo.ReplaceGeneMods(cloned, source.GeneMods); err != nil {
			return nil, fmt.Errorf("failed to copy gene mods: %w", err)
		}
	}

	return s.cardRepo.FindByID(cloned.ID, models.CardPreloads...)
}

func (s *CardService) findOwned(cardID uint64, actor *models.User) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	if card.UserID != actor.ID {
		return nil, ErrNotCardOwner
	}
	return card, nil
}

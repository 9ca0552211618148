package services

import (
	"errors"
	"fmt"

	"github.com/lab-annotate/cataloger-api/internal/bioportal"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUnknownAnnotationKind = errors.New("unknown annotation kind")
	ErrEmptyLabel            = errors.New("annotation label cannot be empty")
)

// AnnotationService manages the controlled-vocabulary tables.
type AnnotationService struct {
	annotationRepo repository.AnnotationRepository
	ontologyRepo   repository.OntologyRepository
}

// NewAnnotationService creates a new AnnotationService.
func NewAnnotationService(annotationRepo repository.AnnotationRepository, ontologyRepo repository.OntologyRepository) *AnnotationService {
	return &AnnotationService{
		annotationRepo: annotationRepo,
		ontologyRepo:   ontologyRepo,
	}
}

// ListChoices returns the rows visible to the actor's group, for a form
// choice list.
func (s *AnnotationService) ListChoices(kind models.AnnotationKind, groupID *uint64) ([]models.AnnotationRow, error) {
	if !kind.Valid() {
		return nil, ErrUnknownAnnotationKind
	}
	rows, err := s.annotationRepo.List(kind, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return rows, nil
}

// GetByID loads a single annotation row.
func (s *AnnotationService) GetByID(kind models.AnnotationKind, id uint64) (*models.AnnotationRow, error) {
	if !kind.Valid() {
		return nil, ErrUnknownAnnotationKind
	}
	return s.annotationRepo.FindByID(kind, id)
}

// AcceptSuggestion creates or reuses a local annotation row for an accepted
// bioportal term. An existing row with the same label is reused when it
// belongs to the actor's group; a row owned by another group yields a fresh
// copy sharing the bioportal identifier, so groups keep independent rows for
// the same external concept. The source ontology is registered as a side
// effect. organismID seeds the organism back-reference on non-organism kinds
// created in a card context.
func (s *AnnotationService) AcceptSuggestion(kind models.AnnotationKind, term bioportal.Term, actor *models.User, organismID *uint64) (*models.AnnotationRow, error) {
	if !kind.Valid() {
		return nil, ErrUnknownAnnotationKind
	}

	ontology, err := s.ontologyRepo.FindOrCreate(term.Acronym(), term.Acronym(), term.Links.Ontology)
	if err != nil {
		return nil, fmt.Errorf("failed to register ontology: %w", err)
	}

	return s.findOrCreate(kind, term.PrefLabel, term.ID, &ontology.ID, actor, organismID)
}

// CreateFromLabel creates or reuses a row for a free-typed name with no
// external identifier.
func (s *AnnotationService) CreateFromLabel(kind models.AnnotationKind, label string, actor *models.User, organismID *uint64) (*models.AnnotationRow, error) {
	if !kind.Valid() {
		return nil, ErrUnknownAnnotationKind
	}
	if label == "" {
		return nil, ErrEmptyLabel
	}
	return s.findOrCreate(kind, label, "", nil, actor, organismID)
}

func (s *AnnotationService) findOrCreate(kind models.AnnotationKind, label, bioportalID string, ontologyID *uint64, actor *models.User, organismID *uint64) (*models.AnnotationRow, error) {
	match, err := s.annotationRepo.FindByLabel(kind, label)
	if err == nil {
		if sameGroup(match.GroupID, actor.GroupID) {
			return match, nil
		}
		// Another group already registered the concept; give this group its
		// own row reusing the external identifier.
		bioportalID = match.BioportalID
		if match.OntologyID != nil {
			ontologyID = match.OntologyID
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up %s by label: %w", kind, err)
	}

	userID := actor.ID
	row := &models.AnnotationRow{
		Label:       label,
		BioportalID: bioportalID,
		UserID:      &userID,
		GroupID:     actor.GroupID,
		OntologyID:  ontologyID,
	}
	if kind != models.KindOrganism {
		row.OrganismID = organismID
	}

	if err := s.annotationRepo.Create(kind, row); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind, err)
	}

	return row, nil
}

func sameGroup(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

package services

import (
	"errors"
	"fmt"

	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/repository"
	"gorm.io/gorm"
)

// GeneModService resolves (gene, marker) pairs into composite annotations.
type GeneModService struct {
	geneModRepo    repository.GeneModRepository
	annotationRepo repository.AnnotationRepository
}

// NewGeneModService creates a new GeneModService.
func NewGeneModService(geneModRepo repository.GeneModRepository, annotationRepo repository.AnnotationRepository) *GeneModService {
	return &GeneModService{
		geneModRepo:    geneModRepo,
		annotationRepo: annotationRepo,
	}
}

// Resolve finds or creates the gene-mod for a (gene, marker) pair. Zero
// identifiers are treated as absent. When neither side resolves to a real
// row there is nothing to record and (nil, nil) is returned. The label keeps
// a dangling hyphen when one side is missing ("CDC52-"), matching how cards
// have always rendered half pairs.
func (s *GeneModService) Resolve(geneID, markerID *uint64) (*models.GeneMod, error) {
	gene := s.lookupSide(models.KindGene, normalizeID(geneID))
	marker := s.lookupSide(models.KindMarker, normalizeID(markerID))
	if gene == nil && marker == nil {
		return nil, nil
	}

	// The pair lookup is keyed on the sides that actually get stored, so a
	// submitted id that points nowhere hits the same row as an absent one.
	var resolvedGeneID, resolvedMarkerID *uint64
	if gene != nil {
		resolvedGeneID = &gene.ID
	}
	if marker != nil {
		resolvedMarkerID = &marker.ID
	}

	if existing, err := s.geneModRepo.FindByPair(resolvedGeneID, resolvedMarkerID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up gene mod: %w", err)
	}

	geneMod := &models.GeneMod{
		Label:       sideLabel(gene) + "-" + sideLabel(marker),
		BioportalID: sideBioportalID(gene) + "-" + sideBioportalID(marker),
		GeneID:      resolvedGeneID,
		MarkerID:    resolvedMarkerID,
	}
	if gene != nil {
		geneMod.UserID = gene.UserID
		geneMod.GroupID = gene.GroupID
	} else {
		geneMod.UserID = marker.UserID
		geneMod.GroupID = marker.GroupID
	}

	if err := s.geneModRepo.Create(geneMod); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent writer resolved the same pair first.
			return s.geneModRepo.FindByPair(resolvedGeneID, resolvedMarkerID)
		}
		return nil, fmt.Errorf("failed to create gene mod: %w", err)
	}

	return geneMod, nil
}

// ListChoices returns the gene mods visible to the group.
func (s *GeneModService) ListChoices(groupID *uint64) ([]models.GeneMod, error) {
	geneMods, err := s.geneModRepo.ListByGroup(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gene mods: %w", err)
	}
	return geneMods, nil
}

func (s *GeneModService) lookupSide(kind models.AnnotationKind, id *uint64) *models.AnnotationRow {
	if id == nil {
		return nil
	}
	row, err := s.annotationRepo.FindByID(kind, *id)
	if err != nil {
		return nil
	}
	return row
}

func normalizeID(id *uint64) *uint64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

func sideLabel(row *models.AnnotationRow) string {
	if row == nil {
		return ""
	}
	return row.Label
}

func sideBioportalID(row *models.AnnotationRow) string {
	if row == nil {
		return ""
	}
	return row.BioportalID
}

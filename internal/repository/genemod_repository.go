package repository

import (
	"github.com/lab-annotate/cataloger-api/internal/database"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"gorm.io/gorm"
)

// GormGeneModRepository is a GORM implementation of GeneModRepository
type GormGeneModRepository struct {
	db *gorm.DB
}

// NewGeneModRepository creates a new GeneModRepository
func NewGeneModRepository(db *gorm.DB) GeneModRepository {
	return &GormGeneModRepository{db: db}
}

func (r *GormGeneModRepository) FindByPair(geneID, markerID *uint64) (*models.GeneMod, error) {
	var geneMod models.GeneMod

	query := r.db
	if geneID != nil {
		query = query.Where("gene_id = ?", *geneID)
	} else {
		query = query.Where("gene_id IS NULL")
	}
	if markerID != nil {
		query = query.Where("marker_id = ?", *markerID)
	} else {
		query = query.Where("marker_id IS NULL")
	}

	if err := query.First(&geneMod).Error; err != nil {
		return nil, err
	}
	return &geneMod, nil
}

func (r *GormGeneModRepository) Create(geneMod *models.GeneMod) error {
	return r.db.Create(geneMod).Error
}

func (r *GormGeneModRepository) ListByGroup(groupID *uint64) ([]models.GeneMod, error) {
	var geneMods []models.GeneMod
	query := r.db.Order("created_at DESC").Scopes(database.VisibleToGroup(groupID))
	if err := query.Find(&geneMods).Error; err != nil {
		return nil, err
	}
	return geneMods, nil
}

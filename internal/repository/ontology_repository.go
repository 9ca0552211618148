package repository

import (
	"errors"

	"github.com/lab-annotate/cataloger-api/internal/models"
	"gorm.io/gorm"
)

// GormOntologyRepository is a GORM implementation of OntologyRepository
type GormOntologyRepository struct {
	db *gorm.DB
}

// NewOntologyRepository creates a new OntologyRepository
func NewOntologyRepository(db *gorm.DB) OntologyRepository {
	return &GormOntologyRepository{db: db}
}

func (r *GormOntologyRepository) FindOrCreate(acronym, name, bioportalID string) (*models.Ontology, error) {
	var ontology models.Ontology
	err := r.db.Where("acronym = ?", acronym).First(&ontology).Error
	if err == nil {
		return &ontology, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ontology = models.Ontology{Acronym: acronym, Name: name, BioportalID: bioportalID}
	if err := r.db.Create(&ontology).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the insert race; the row exists now.
			if ferr := r.db.Where("acronym = ?", acronym).First(&ontology).Error; ferr == nil {
				return &ontology, nil
			}
		}
		return nil, err
	}
	return &ontology, nil
}

package repository

import (
	"fmt"

	"github.com/lab-annotate/cataloger-api/internal/database"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"gorm.io/gorm"
)

// annotationColumns is the shared column set selected across the six
// annotation tables (organisms have no organism_id, so it is excluded here
// and only written on create).
const annotationColumns = "id, label, bioportal_id, user_id, group_id, ontology_id, created_at"

// GormAnnotationRepository is a GORM implementation of AnnotationRepository
type GormAnnotationRepository struct {
	db *gorm.DB
}

// NewAnnotationRepository creates a new AnnotationRepository
func NewAnnotationRepository(db *gorm.DB) AnnotationRepository {
	return &GormAnnotationRepository{db: db}
}

func (r *GormAnnotationRepository) List(kind models.AnnotationKind, groupID *uint64) ([]models.AnnotationRow, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown annotation kind %q", kind)
	}

	var rows []models.AnnotationRow
	query := r.db.Table(kind.Table()).
		Select(annotationColumns).
		Scopes(database.VisibleToGroup(groupID))
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormAnnotationRepository) FindByLabel(kind models.AnnotationKind, label string) (*models.AnnotationRow, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown annotation kind %q", kind)
	}

	var row models.AnnotationRow
	err := r.db.Table(kind.Table()).
		Select(annotationColumns).
		Where("label = ?", label).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormAnnotationRepository) FindByID(kind models.AnnotationKind, id uint64) (*models.AnnotationRow, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown annotation kind %q", kind)
	}

	var row models.AnnotationRow
	err := r.db.Table(kind.Table()).
		Select(annotationColumns).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormAnnotationRepository) Create(kind models.AnnotationKind, row *models.AnnotationRow) error {
	fields := models.AnnotationFields{
		Label:       row.Label,
		BioportalID: row.BioportalID,
		UserID:      row.UserID,
		GroupID:     row.GroupID,
		OntologyID:  row.OntologyID,
	}

	switch kind {
	case models.KindOrganism:
		record := models.Organism{AnnotationFields: fields}
		if err := r.db.Create(&record).Error; err != nil {
			return err
		}
		row.ID = record.ID
		row.CreatedAt = record.CreatedAt
	case models.KindSample:
		record := models.Sample{AnnotationFields: fields, OrganismID: row.OrganismID}
		if err := r.db.Create(&record).Error; err != nil {
			return err
		}
		row.ID = record.ID
		row.CreatedAt = record.CreatedAt
	case models.KindProcess:
		record := models.Process{AnnotationFields: fields, OrganismID: row.OrganismID}
		if err := r.db.Create(&record).Error; err != nil {
			return err
		}
		row.ID = record.ID
		row.CreatedAt = record.CreatedAt
	case models.KindMethod:
		record := models.Method{AnnotationFields: fields, OrganismID: row.OrganismID}
		if err := r.db.Create(&record).Error; err != nil {
			return err
		}
		row.ID = record.ID
		row.CreatedAt = record.CreatedAt
	case models.KindMarker:
		record := models.Marker{AnnotationFields: fields, OrganismID: row.OrganismID}
		if err := r.db.Create(&record).Error; err != nil {
			return err
		}
		row.ID = record.ID
		row.CreatedAt = record.CreatedAt
	case models.KindGene:
		record := models.Gene{AnnotationFields: fields, OrganismID: row.OrganismID}
		if err := r.db.Create(&record).Error; err != nil {
			return err
		}
		row.ID = record.ID
		row.CreatedAt = record.CreatedAt
	default:
		return fmt.Errorf("unknown annotation kind %q", kind)
	}

	return nil
}

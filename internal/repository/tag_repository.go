package repository

import (
	"github.com/lab-annotate/cataloger-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository is a GORM implementation of TagRepository
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &GormTagRepository{db: db}
}

func (r *GormTagRepository) ListLabels(groupID *uint64) ([]string, error) {
	var labels []string
	query := r.db.Model(&models.Tag{})
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	} else {
		query = query.Where("group_id IS NULL")
	}
	if err := query.Pluck("label", &labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *GormTagRepository) CreateMissing(labels []string, groupID *uint64) error {
	if len(labels) == 0 {
		return nil
	}

	existing, err := r.ListLabels(groupID)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(existing))
	for _, label := range existing {
		known[label] = struct{}{}
	}

	var tags []models.Tag
	for _, label := range labels {
		if _, ok := known[label]; ok {
			continue
		}
		tags = append(tags, models.Tag{Label: label, GroupID: groupID})
	}
	if len(tags) == 0 {
		return nil
	}

	// The unique (group_id, label) index closes the race between the
	// existence check and the insert.
	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&tags).Error
}

func (r *GormTagRepository) ListByGroup(groupID *uint64) ([]models.Tag, error) {
	var tags []models.Tag
	query := r.db.Order("label ASC")
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}
	if err := query.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

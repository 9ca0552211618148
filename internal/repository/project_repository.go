package repository

import (
	"github.com/lab-annotate/cataloger-api/internal/database"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) FindByName(name string, groupID *uint64) (*models.Project, error) {
	var project models.Project
	query := r.db.Where("name = ?", name)
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}
	if err := query.First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) ListByGroup(groupID *uint64) ([]models.Project, error) {
	var projects []models.Project
	query := r.db.Order("created_at DESC").Scopes(database.VisibleToGroup(groupID))
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

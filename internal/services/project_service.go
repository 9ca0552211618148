package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/repository"
	"gorm.io/gorm"
)

var ErrInvalidProjectName = errors.New("project name cannot be empty")

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// FindOrCreate returns the group's project with the given name, creating
// it on first use. Used both by the projects endpoint and by the inline
// new-project branch of the card form.
func (s *ProjectService) FindOrCreate(name, projectComment string, actor *models.User) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}

	existing, err := s.projectRepo.FindByName(name, actor.GroupID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up project: %w", err)
	}

	userID := actor.ID
	project := &models.Project{
		Name:    name,
		Comment: projectComment,
		UserID:  &userID,
		GroupID: actor.GroupID,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListForGroup returns projects visible to the actor's group.
func (s *ProjectService) ListForGroup(groupID *uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByGroup(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

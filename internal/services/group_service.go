package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lab-annotate/cataloger-api/internal/constants"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/lab-annotate/cataloger-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrGroupNameTaken    = errors.New("group name already registered")
	ErrInvalidGroupName  = errors.New("group name too short")
	ErrFailedToSaveGroup = errors.New("failed to create group")
)

// GroupService provides business logic for group operations.
type GroupService struct {
	groupRepo repository.GroupRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// CreateGroup registers a new group with a unique name.
func (s *GroupService) CreateGroup(name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if len(name) < constants.MinGroupNameLength {
		return nil, ErrInvalidGroupName
	}

	if _, err := s.groupRepo.FindByName(name); err == nil {
		return nil, ErrGroupNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check group name: %w", err)
	}

	group := &models.Group{GroupName: name, Active: true}
	if err := s.groupRepo.Create(group); err != nil {
		return nil, ErrFailedToSaveGroup
	}

	return group, nil
}

// ListGroups returns every registered group, for the registration form.
func (s *GroupService) ListGroups() ([]models.Group, error) {
	groups, err := s.groupRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

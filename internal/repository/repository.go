package repository

import (
	"github.com/lab-annotate/cataloger-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint64) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	Update(user *models.User) error
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	Create(group *models.Group) error
	FindByID(id uint64) (*models.Group, error)
	FindByName(name string) (*models.Group, error)
	List() ([]models.Group, error)
}

// AnnotationRepository provides kind-independent access to the six
// controlled-vocabulary tables.
type AnnotationRepository interface {
	// List returns rows visible to the group (group-owned plus unowned),
	// newest first.
	List(kind models.AnnotationKind, groupID *uint64) ([]models.AnnotationRow, error)

	// FindByLabel finds a row by exact label match, regardless of group.
	FindByLabel(kind models.AnnotationKind, label string) (*models.AnnotationRow, error)

	FindByID(kind models.AnnotationKind, id uint64) (*models.AnnotationRow, error)

	// Create inserts a new row and fills in the generated ID.
	Create(kind models.AnnotationKind, row *models.AnnotationRow) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uint64) (*models.Project, error)
	FindByName(name string, groupID *uint64) (*models.Project, error)
	ListByGroup(groupID *uint64) ([]models.Project, error)
}

// GeneModRepository defines the interface for gene-modification data access
type GeneModRepository interface {
	// FindByPair looks up the row for an exact (gene_id, marker_id) pair,
	// treating a nil side as NULL.
	FindByPair(geneID, markerID *uint64) (*models.GeneMod, error)

	Create(geneMod *models.GeneMod) error
	ListByGroup(groupID *uint64) ([]models.GeneMod, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// ListLabels returns every tag label registered for the group.
	ListLabels(groupID *uint64) ([]string, error)

	// CreateMissing inserts the labels not yet present for the group.
	CreateMissing(labels []string, groupID *uint64) error

	ListByGroup(groupID *uint64) ([]models.Tag, error)
}

// OntologyRepository defines the interface for the ontologies lookup table
type OntologyRepository interface {
	FindOrCreate(acronym, name, bioportalID string) (*models.Ontology, error)
}

// CardFilter holds filtering options for listing cards
type CardFilter struct {
	UserID   *uint64
	GroupID  *uint64
	Page     int
	PageSize int
}

// CardRepository defines the interface for card data access
type CardRepository interface {
	Create(card *models.Card) error
	FindByID(id uint64, preload ...string) (*models.Card, error)
	List(filter CardFilter) ([]models.Card, int64, error)
	Update(card *models.Card) error
	Delete(id uint64) error

	// ReplaceGeneMods resets the card's gene-mod association list.
	ReplaceGeneMods(card *models.Card, geneMods []models.GeneMod) error
}

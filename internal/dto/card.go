package dto

import (
	"time"

	"github.com/lab-annotate/cataloger-api/internal/comment"
	"github.com/lab-annotate/cataloger-api/internal/models"
)

// AnnotationDTO represents a controlled-vocabulary term in API responses
type AnnotationDTO struct {
	ID          uint64 `json:"id"`
	Label       string `json:"label"`
	BioportalID string `json:"bioportal_id,omitempty"`
}

// GeneModDTO represents a gene/marker pairing in API responses
type GeneModDTO struct {
	ID       uint64  `json:"id"`
	Label    string  `json:"label"`
	GeneID   *uint64 `json:"gene_id"`
	MarkerID *uint64 `json:"marker_id"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
}

// CardDTO represents a card in API responses
type CardDTO struct {
	ID        uint64           `json:"id"`
	Title     string           `json:"title"`
	Comment   string           `json:"comment"`
	Sections  comment.Sections `json:"sections"`
	Tags      []string         `json:"tags"`
	UserID    uint64           `json:"user_id"`
	GroupID   *uint64          `json:"group_id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Owner    *UserDTO       `json:"owner,omitempty"`
	Project  *ProjectDTO    `json:"project,omitempty"`
	Organism *AnnotationDTO `json:"organism,omitempty"`
	Sample   *AnnotationDTO `json:"sample,omitempty"`
	Process  *AnnotationDTO `json:"process,omitempty"`
	Method   *AnnotationDTO `json:"method,omitempty"`
	GeneMods []GeneModDTO   `json:"gene_mods"`
}

// CardListItemDTO represents a card in list responses (minimal data)
type CardListItemDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	UserID    uint64    `json:"user_id"`
	Owner     *UserDTO  `json:"owner,omitempty"`
	Project   string    `json:"project,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CardListResponse represents a paginated list of cards
type CardListResponse struct {
	Cards      []CardListItemDTO `json:"cards"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:      project.ID,
		Name:    project.Name,
		Comment: project.Comment,
	}
}

// ToAnnotationDTO converts an AnnotationRow to AnnotationDTO
func ToAnnotationDTO(row models.AnnotationRow) AnnotationDTO {
	return AnnotationDTO{
		ID:          row.ID,
		Label:       row.Label,
		BioportalID: row.BioportalID,
	}
}

// ToGeneModDTO converts a GeneMod model to GeneModDTO
func ToGeneModDTO(gm models.GeneMod) GeneModDTO {
	return GeneModDTO{
		ID:       gm.ID,
		Label:    gm.Label,
		GeneID:   gm.GeneID,
		MarkerID: gm.MarkerID,
	}
}

// ToCardDTO converts a Card model (with preloads) to CardDTO
func ToCardDTO(card models.Card) CardDTO {
	dto := CardDTO{
		ID:        card.ID,
		Title:     card.Title,
		Comment:   card.Comment,
		Sections:  comment.Parse(card.Comment),
		Tags:      comment.ExtractTags(card.Comment),
		UserID:    card.UserID,
		GroupID:   card.GroupID,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
		GeneMods:  make([]GeneModDTO, 0, len(card.GeneMods)),
	}

	if card.User.ID != 0 {
		owner := ToUserDTO(card.User)
		dto.Owner = &owner
	}
	if card.Project != nil {
		project := ToProjectDTO(*card.Project)
		dto.Project = &project
	}
	if card.Organism != nil {
		dto.Organism = &AnnotationDTO{ID: card.Organism.ID, Label: card.Organism.Label, BioportalID: card.Organism.BioportalID}
	}
	if card.Sample != nil {
		dto.Sample = &AnnotationDTO{ID: card.Sample.ID, Label: card.Sample.Label, BioportalID: card.Sample.BioportalID}
	}
	if card.Process != nil {
		dto.Process = &AnnotationDTO{ID: card.Process.ID, Label: card.Process.Label, BioportalID: card.Process.BioportalID}
	}
	if card.Method != nil {
		dto.Method = &AnnotationDTO{ID: card.Method.ID, Label: card.Method.Label, BioportalID: card.Method.BioportalID}
	}
	for _, gm := range card.GeneMods {
		dto.GeneMods = append(dto.GeneMods, ToGeneModDTO(gm))
	}

	return dto
}

// ToCardListItemDTO converts a Card model to CardListItemDTO
func ToCardListItemDTO(card models.Card) CardListItemDTO {
	dto := CardListItemDTO{
		ID:        card.ID,
		Title:     card.Title,
		UserID:    card.UserID,
		CreatedAt: card.CreatedAt,
	}
	if card.User.ID != 0 {
		owner := ToUserDTO(card.User)
		dto.Owner = &owner
	}
	if card.Project != nil {
		dto.Project = card.Project.Name
	}
	return dto
}

// ToCardListResponse converts a slice of cards to CardListResponse
func ToCardListResponse(cards []models.Card, page, pageSize int, totalCount int64) CardListResponse {
	items := make([]CardListItemDTO, len(cards))
	for i, card := range cards {
		items[i] = ToCardListItemDTO(card)
	}

	return CardListResponse{
		Cards:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}

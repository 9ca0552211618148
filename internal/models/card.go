package models

import (
	"time"

	"gorm.io/gorm"
)

// Card is the aggregate root: one saved annotation record for one
// experiment, owned by a user and visible to their group.
type Card struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Title      string         `gorm:"type:varchar(128);not null" json:"title"`
	Comment    string         `gorm:"type:text" json:"comment"`
	UserID     uint64         `gorm:"not null;index" json:"user_id"`
	GroupID    *uint64        `gorm:"index" json:"group_id"`
	ProjectID  *uint64        `json:"project_id"`
	OrganismID *uint64        `json:"organism_id"`
	SampleID   *uint64        `json:"sample_id"`
	ProcessID  *uint64        `json:"process_id"`
	MethodID   *uint64        `json:"method_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Organism *Organism `gorm:"foreignKey:OrganismID" json:"organism,omitempty"`
	Sample   *Sample   `gorm:"foreignKey:SampleID" json:"sample,omitempty"`
	Process  *Process  `gorm:"foreignKey:ProcessID" json:"process,omitempty"`
	Method   *Method   `gorm:"foreignKey:MethodID" json:"method,omitempty"`
	GeneMods []GeneMod `gorm:"many2many:card_gene_mods" json:"gene_mods,omitempty"`
}

// CardPreloads is the preload set needed to render or export a card.
var CardPreloads = []string{"User", "Project", "Organism", "Sample", "Process", "Method", "GeneMods"}

package models

import "time"

// GeneMod is a resolved (gene, marker) pairing treated as its own
// annotation. At most one row exists per pair; the composite unique index
// backs the find-or-create in the resolver.
type GeneMod struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Label       string    `gorm:"type:varchar(128);not null" json:"label"`
	BioportalID string    `gorm:"type:varchar(255)" json:"bioportal_id"`
	GeneID      *uint64   `gorm:"uniqueIndex:idx_gene_mods_pair" json:"gene_id"`
	MarkerID    *uint64   `gorm:"uniqueIndex:idx_gene_mods_pair" json:"marker_id"`
	UserID      *uint64   `json:"user_id"`
	GroupID     *uint64   `gorm:"index" json:"group_id"`
	CreatedAt   time.Time `json:"created_at"`
}

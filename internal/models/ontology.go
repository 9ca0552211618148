package models

import "time"

// Ontology is one of the bioportal source ontologies, registered lazily
// when a term from it is first accepted.
type Ontology struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Acronym     string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"acronym"`
	Name        string    `gorm:"type:varchar(128);not null" json:"name"`
	BioportalID string    `gorm:"type:varchar(128);not null" json:"bioportal_id"`
	CreatedAt   time.Time `json:"created_at"`
}

package models

import "time"

// AnnotationKind identifies one of the controlled-vocabulary tables.
type AnnotationKind string

const (
	KindOrganism AnnotationKind = "organisms"
	KindSample   AnnotationKind = "samples"
	KindProcess  AnnotationKind = "processes"
	KindMethod   AnnotationKind = "methods"
	KindMarker   AnnotationKind = "markers"
	KindGene     AnnotationKind = "genes"
)

// AnnotationKinds lists every kind, in the order card forms present them.
var AnnotationKinds = []AnnotationKind{
	KindOrganism, KindSample, KindProcess, KindMethod, KindMarker, KindGene,
}

// Valid reports whether k names a known annotation table.
func (k AnnotationKind) Valid() bool {
	switch k {
	case KindOrganism, KindSample, KindProcess, KindMethod, KindMarker, KindGene:
		return true
	}
	return false
}

// Table returns the database table backing the kind.
func (k AnnotationKind) Table() string { return string(k) }

// AnnotationFields is the shape shared by every controlled-vocabulary term.
// Rows are created when a user accepts a bioportal suggestion or types a free
// name, and are never updated in place.
type AnnotationFields struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Label       string    `gorm:"type:varchar(128);not null;index" json:"label"`
	BioportalID string    `gorm:"type:varchar(128)" json:"bioportal_id"`
	UserID      *uint64   `json:"user_id"`
	GroupID     *uint64   `gorm:"index" json:"group_id"`
	OntologyID  *uint64   `json:"ontology_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Organism struct {
	AnnotationFields
}

// Sample, Process, Method, Marker and Gene additionally remember the
// organism they were registered under; organisms themselves do not.

type Sample struct {
	AnnotationFields
	OrganismID *uint64 `json:"organism_id"`
}

type Process struct {
	AnnotationFields
	OrganismID *uint64 `json:"organism_id"`
}

type Method struct {
	AnnotationFields
	OrganismID *uint64 `json:"organism_id"`
}

type Marker struct {
	AnnotationFields
	OrganismID *uint64 `json:"organism_id"`
}

type Gene struct {
	AnnotationFields
	OrganismID *uint64 `json:"organism_id"`
}

// AnnotationRow is the kind-independent view used for choice lists and
// find-or-create lookups across the six annotation tables.
type AnnotationRow struct {
	ID          uint64    `json:"id"`
	Label       string    `json:"label"`
	BioportalID string    `json:"bioportal_id"`
	UserID      *uint64   `json:"user_id"`
	GroupID     *uint64   `json:"group_id"`
	OntologyID  *uint64   `json:"ontology_id"`
	OrganismID  *uint64   `json:"organism_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

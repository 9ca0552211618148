package models

import "time"

// Tag is a bare keyword extracted from `#`-prefixed tokens in a card
// comment, scoped to a group. The sync is append-only: stale tags are
// never deleted.
type Tag struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Label     string    `gorm:"type:varchar(80);not null;uniqueIndex:idx_tags_group_label" json:"label"`
	GroupID   *uint64   `gorm:"uniqueIndex:idx_tags_group_label" json:"group_id"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	FirstName    string         `gorm:"type:varchar(30)" json:"first_name"`
	LastName     string         `gorm:"type:varchar(30)" json:"last_name"`
	PasswordHash string         `gorm:"type:varchar(255)" json:"-"`
	GroupID      *uint64        `json:"group_id"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"is_admin"`
	Active       bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Group *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	Cards []Card `gorm:"foreignKey:UserID" json:"-"`
}

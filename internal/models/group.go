package models

import (
	"time"

	"gorm.io/gorm"
)

type Group struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	GroupName string         `gorm:"type:varchar(80);uniqueIndex;not null" json:"group_name"`
	Active    bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Users []User `gorm:"foreignKey:GroupID" json:"-"`
}

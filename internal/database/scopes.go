package database

import (
	"gorm.io/gorm"

	"github.com/lab-annotate/cataloger-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// VisibleToGroup scopes a query to rows owned by the group or owned by
// nobody. Rows without a group id are readable across groups.
func VisibleToGroup(groupID *uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if groupID == nil {
			return db
		}
		return db.Where("group_id = ? OR group_id IS NULL", *groupID)
	}
}

package services

import (
	"testing"

	"github.com/lab-annotate/cataloger-api/internal/database"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(database.MigrationModels()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// createTestUser inserts a member of the named group, creating the group
// on first use so several users can share it.
func createTestUser(t *testing.T, db *gorm.DB, username, groupName string) *models.User {
	t.Helper()

	group := &models.Group{GroupName: groupName, Active: true}
	require.NoError(t, db.Where("group_name = ?", groupName).FirstOrCreate(group).Error)

	groupID := group.ID
	user := &models.User{
		Username: username,
		GroupID:  &groupID,
		Active:   true,
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

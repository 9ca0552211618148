package database

import (
	"fmt"

	"github.com/lab-annotate/cataloger-api/internal/config"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the database selected by DB_DRIVER using the connection
// string from DATABASE_URL.
func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DatabaseURL)
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

// Migrate creates or updates every table in the schema.
func Migrate() error {
	if err := DB.AutoMigrate(MigrationModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrationModels lists every model in dependency order; shared with tests
// so the sqlite schema matches production.
func MigrationModels() []interface{} {
	return []interface{}{
		&models.Group{},
		&models.User{},
		&models.Ontology{},
		&models.Organism{},
		&models.Sample{},
		&models.Process{},
		&models.Method{},
		&models.Marker{},
		&models.Gene{},
		&models.Project{},
		&models.GeneMod{},
		&models.Tag{},
		&models.Card{},
	}
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}

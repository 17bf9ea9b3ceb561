package config

import (
	"fmt"
	"log"
	"os"

	"github.com/gharbazaar/backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MirrorDB is the relational mirror of the property collection. Handlers
// write it best-effort after each primary-store write; the reconciler
// keeps it converged with the primary store.
var MirrorDB *gorm.DB

func ConnectMirror() (*gorm.DB, error) {
	dsn := os.Getenv("MIRROR_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("MIRROR_DSN not set in environment")
	}

	var dialector gorm.Dialector
	switch driver := os.Getenv("MIRROR_DRIVER"); driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported MIRROR_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error connecting to mirror database: %v", err)
	}

	if err := db.AutoMigrate(&models.PropertyRecord{}, &models.Shortlist{}); err != nil {
		return nil, fmt.Errorf("mirror migration failed: %v", err)
	}

	MirrorDB = db
	log.Println("Connected to mirror database")
	return db, nil
}

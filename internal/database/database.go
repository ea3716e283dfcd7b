package database

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/estantedigital/plataforma/internal/config"
	"github.com/estantedigital/plataforma/internal/entities"
)

// Database wraps the relational (GORM) connection holding Pessoa/Account.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the relational store. MySQL is used when a DSN is
// configured; the sqlite path is the local-dev fallback.
func NewDatabase(cfg config.Database) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("database driver is mysql but DATABASE_DSN is empty")
		}
		dialector = mysql.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Pessoa{}, &entities.Account{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	log.Printf("Relational store initialized (%s)", cfg.Driver)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

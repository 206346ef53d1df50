package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/QuaKeyz/reselling-store/config"
	"github.com/QuaKeyz/reselling-store/models"
)

var DB *gorm.DB

// Connect opens the Postgres connection and runs migrations.
func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return err
	}
	return DB.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{})
}

package daemon

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/config"
	"github.com/volunteerhub/volunteerhub/internal/db/models"
	"github.com/volunteerhub/volunteerhub/internal/perm"
)

// seed creates the initial admin account on an empty database.
func seed(_ *config.Config, db *gorm.DB) {
	var count int64

	db.Model(&models.User{}).Count(&count)

	if count > 0 {
		return
	}

	admin := models.User{
		Active:     true,
		Username:   "admin",
		Email:      "admin@localhost",
		Password:   models.HashPassword("changeme"),
		Role:       perm.RoleAdmin,
		AuthSource: models.AuthSourceLocal,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed admin user")
		return
	}

	log.Warn().Msg("seeded default admin user 'admin' with password 'changeme', change it immediately")
}

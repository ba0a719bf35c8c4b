package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoDocVault/GoDocVault/internal/config"
	"github.com/GoDocVault/GoDocVault/internal/db/models"
)

// seed creates the initial admin account when the accounts table is empty,
// so a fresh installation can be logged into at all.
func seed(cfg *config.Config, db *gorm.DB) {
	var count int64
	db.Model(&models.Account{}).Count(&count)

	if count > 0 {
		return
	}

	email := cfg.Seed.AdminEmail
	if email == "" {
		email = "admin@localhost"
	}

	secret := cfg.Seed.AdminSecret
	if secret == "" {
		secret = "changeme"
	}

	db.Create(
		&models.Account{
			Name:       "Administrator",
			Email:      models.NormalizeEmail(email),
			SecretHash: models.HashSecret(secret),
			Role:       models.RoleAdmin,
		},
	)

	log.Info().Str("email", email).Msg("seeded initial admin account, change its password")
}

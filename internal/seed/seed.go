// Package seed boots a first admin account so fresh installs are usable.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gigbridge/gigbridge/internal/config"
	identitydomain "github.com/gigbridge/gigbridge/internal/identity/domain"
	"github.com/gigbridge/gigbridge/internal/identity/password"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@gigbridge.io"
	defaultAdminPassword = "admin"
	defaultAdminDisplay  = "GigBridge Admin"
)

// EnsureBootstrapAdmin creates an admin account when none exists yet.
// Credentials come from BOOTSTRAP_ADMIN_EMAIL / BOOTSTRAP_ADMIN_PASSWORD,
// falling back to the local-dev defaults.
func EnsureBootstrapAdmin(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(cfg.BootstrapAdminEmail))
	if email == "" {
		email = defaultAdminEmail
	}
	pass := cfg.BootstrapAdminPassword
	if pass == "" {
		pass = defaultAdminPassword
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).
			Model(&identitydomain.User{}).
			Where("role = ?", identitydomain.RoleAdmin).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hashed, err := password.Hash(pass)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		admin := identitydomain.User{
			ID:           node.Generate(),
			Email:        email,
			PasswordHash: hashed,
			DisplayName:  defaultAdminDisplay,
			Role:         identitydomain.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.WithContext(ctx).Create(&admin).Error
	})
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"clinic-services/config"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// defaultAccounts are created by Seed; each password equals the username.
var defaultAccounts = []struct {
	username string
	role     entity.Role
}{
	{"admin", entity.RoleAdmin},
	{"manager", entity.RoleManager},
	{"doctor", entity.RoleDoctor},
	{"user", entity.RoleUser},
}

// Seed creates the default accounts that do not exist yet and reports how
// many were created.
func (app *App) Seed(ctx context.Context) (int, error) {
	if app.Service != config.ServiceAccount {
		return 0, fmt.Errorf("seed runs against the account service, not %q", app.Service)
	}

	userRepo := repository.NewUserRepository()
	db := app.DB.WithContext(ctx)

	created := 0
	for _, acc := range defaultAccounts {
		existing, err := userRepo.FindByUsername(db, acc.username)
		if err != nil {
			return created, err
		}
		if existing != nil {
			app.Log.Infof("Account %s already exists, skipping", acc.username)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(acc.username), bcrypt.DefaultCost)
		if err != nil {
			return created, err
		}
		user := &entity.User{
			Username:  acc.username,
			Password:  string(hashed),
			FirstName: string(acc.role),
			Roles:     entity.NewRoleSet(acc.role),
		}
		if err := userRepo.Create(db, user); err != nil {
			return created, fmt.Errorf("failed to create %s: %w", acc.username, err)
		}
		created++
		app.Log.Infof("Account %s created with role %s", acc.username, acc.role)
	}
	return created, nil
}

// Reindex drains the pending-reindex set once.
func (app *App) Reindex(ctx context.Context) (int, error) {
	if app.IndexService == nil {
		return 0, errors.New("reindex runs against the document service")
	}
	n, err := app.IndexService.Drain(ctx)
	if err != nil {
		return n, err
	}

	pending, err := app.IndexService.Pending(ctx)
	if err != nil {
		app.Log.Warnf("Failed to count pending documents: %v", err)
		return n, nil
	}
	if pending > 0 {
		app.Log.Warnf("%d documents still pending reindex", pending)
	}
	return n, nil
}

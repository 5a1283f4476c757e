package usecase

import (
	"io"
	"testing"
	"time"

	"clinic-services/config"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/infrastructure/database"
	"clinic-services/internal/permission"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func openDB(t *testing.T, service string) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory("usecase_"+t.Name(), service)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
	}
}

func principal(id int64, roles ...entity.Role) *permission.Principal {
	return &permission.Principal{ID: id, Roles: entity.NewRoleSet(roles...)}
}

func at(hhmm string) time.Time {
	t, err := time.Parse(time.RFC3339, "2026-03-02T"+hhmm+":00Z")
	if err != nil {
		panic(err)
	}
	return t
}

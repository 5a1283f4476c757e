package database

import (
	"errors"
	"fmt"

	"clinic-services/config"
	"clinic-services/internal/domain/entity"
	"clinic-services/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Models lists the tables owned by a service, parents first.
func Models(service string) ([]interface{}, error) {
	switch service {
	case config.ServiceAccount:
		return []interface{}{&entity.User{}, &entity.IssuedToken{}, &entity.AuditLog{}}, nil
	case config.ServiceHospital:
		return []interface{}{&entity.Hospital{}}, nil
	case config.ServiceTimetable:
		return []interface{}{&entity.Timetable{}, &entity.Appointment{}}, nil
	case config.ServiceDocument:
		return []interface{}{&entity.Document{}}, nil
	}
	return nil, fmt.Errorf("unknown service %q", service)
}

// AutoMigrate creates the service schema through gorm. Used for sqlite runs
// and tests; postgres deployments use Migrate.
func AutoMigrate(db *gorm.DB, service string) error {
	models, err := Models(service)
	if err != nil {
		return err
	}
	return db.AutoMigrate(models...)
}

// Migrate applies (up) or reverts (down) the embedded SQL migrations of a service.
func Migrate(cfg config.DBConfig, service string, up bool) error {
	if cfg.Driver == "sqlite" {
		if !up {
			return errors.New("down migrations are not supported for sqlite")
		}
		db, err := NewSQLiteConnection(cfg.Name, nil)
		if err != nil {
			return err
		}
		return AutoMigrate(db, service)
	}

	if !config.IsKnownService(service) {
		return fmt.Errorf("unknown service %q", service)
	}

	src, err := iofs.New(migrations.FS, service)
	if err != nil {
		return fmt.Errorf("failed to load migrations for %s: %w", service, err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.MigrateURL())
	if err != nil {
		return fmt.Errorf("failed to init migrate: %w", err)
	}
	defer m.Close()

	if up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr == nil {
		logrus.WithFields(logrus.Fields{
			"service": service,
			"version": version,
			"dirty":   dirty,
		}).Info("Migrations applied")
	}

	return nil
}

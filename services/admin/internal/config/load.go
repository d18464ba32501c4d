package config

import (
	"errors"
	"fmt"

	"github.com/Skotchmaster/farm_admin/pkg/config"
	pkgdb "github.com/Skotchmaster/farm_admin/pkg/db"
)

type ServiceConfig struct {
	config.Config
}

// Load reads the shared configuration and checks what the admin service
// cannot start without.
func Load(path string) (ServiceConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return ServiceConfig{}, err
	}

	var errs []error
	if err := config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		errs = append(errs, err)
	}
	if err := config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET"); err != nil {
		errs = append(errs, err)
	}
	switch cfg.DBDriver {
	case pkgdb.DriverPostgres, pkgdb.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", pkgdb.DriverPostgres, pkgdb.DriverSQLite, cfg.DBDriver))
	}
	if err := errors.Join(errs...); err != nil {
		return ServiceConfig{}, err
	}

	return ServiceConfig{Config: cfg}, nil
}

// LoadDB is Load for commands that only touch the database.
func LoadDB(path string) (ServiceConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return ServiceConfig{}, err
	}
	if err := config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return ServiceConfig{}, err
	}
	return ServiceConfig{Config: cfg}, nil
}

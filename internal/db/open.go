package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the database selected by the DSN scheme.
func Open(dsn string) (*gorm.DB, error) {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return nil, fmt.Errorf("db: empty dsn")
	}

	dialector, errDialector := dialectorForDSN(trimmed)
	if errDialector != nil {
		return nil, errDialector
	}

	conn, errOpen := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if errOpen != nil {
		return nil, fmt.Errorf("db: open: %w", errOpen)
	}
	return conn, nil
}

// dialectorForDSN picks the gorm dialector matching the DSN scheme.
func dialectorForDSN(dsn string) (gorm.Dialector, error) {
	lowered := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lowered, "postgres://"), strings.HasPrefix(lowered, "postgresql://"):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(lowered, "file:"), strings.HasSuffix(lowered, ".db"), strings.HasSuffix(lowered, ".sqlite"):
		return sqlite.Open(dsn), nil
	case strings.Contains(lowered, "host="):
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("db: unrecognized dsn scheme")
	}
}

package storage

import (
	"fmt"

	"go-roster/internal/config"
	"go-roster/internal/shared/connection"
)

// Open builds the backend selected by STORAGE_DRIVER.
func Open(cfg config.StorageConfig) (KV, error) {
	switch cfg.Driver {
	case config.StorageDriverMemory:
		return NewMemoryKV(), nil
	case config.StorageDriverPostgres:
		pg := cfg.Postgres
		db, err := connection.ConnectGORMWithRetry(pg.Host, pg.User, pg.Password, pg.Name, pg.Port, pg.SSLMode, cfg.MaxRetries)
		if err != nil {
			return nil, err
		}
		kv := NewGormKV(db)
		if err := kv.Migrate(); err != nil {
			_ = kv.Close()
			return nil, fmt.Errorf("migrate kv_entries: %w", err)
		}
		return kv, nil
	case config.StorageDriverSQLite, "":
		return NewSQLiteKV(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KVEntry struct {
	Key       string `gorm:"primaryKey"`
	Payload   []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entries" }

// GormKV stores snapshots in a relational table through gorm (PostgreSQL in production).
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

// Migrate creates the backing table when it does not exist yet.
func (g *GormKV) Migrate() error {
	return g.db.AutoMigrate(&KVEntry{})
}

func (g *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry KVEntry
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapDBError(err)
	}
	return entry.Payload, nil
}

func (g *GormKV) Put(ctx context.Context, key string, value []byte) error {
	entry := KVEntry{Key: key, Payload: value}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&entry).Error
	return mapDBError(err)
}

func (g *GormKV) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package staff

import (
	"context"
	"encoding/json"
	"errors"

	"go-roster/internal/domain"
	"go-roster/internal/storage"

	"go.uber.org/zap"
)

// StorageKey is the single key the whole roster is persisted under.
const StorageKey = "staffData"

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	Load(ctx context.Context) []domain.Staff
	Save(ctx context.Context, records []domain.Staff) error
}

type repository struct {
	kv     storage.KV
	logger *zap.Logger
}

func NewRepository(kv storage.KV, logger ...*zap.Logger) Repository {
	l := zap.L().Named("staff.repository")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.repository")
	}
	return &repository{kv: kv, logger: l}
}

// Load never fails: a missing key, an unreachable backend or a corrupted payload
// all start the roster empty.
func (r *repository) Load(ctx context.Context) []domain.Staff {
	payload, err := r.kv.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			r.logger.Debug("no stored roster, starting empty")
		} else {
			r.logger.Warn("load roster failed, starting empty", zap.Error(err))
		}
		return []domain.Staff{}
	}

	var records []domain.Staff
	if err := json.Unmarshal(payload, &records); err != nil {
		r.logger.Warn("stored roster is corrupted, starting empty",
			zap.Int("bytes", len(payload)),
			zap.Error(err),
		)
		return []domain.Staff{}
	}
	if records == nil {
		records = []domain.Staff{}
	}

	r.logger.Info("roster loaded", zap.Int("records", len(records)))
	return records
}

// Save rewrites the whole collection under StorageKey.
func (r *repository) Save(ctx context.Context, records []domain.Staff) error {
	if records == nil {
		records = []domain.Staff{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := r.kv.Put(ctx, StorageKey, payload); err != nil {
		r.logger.Error("save roster failed", zap.Int("records", len(records)), zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

package staff_test

import (
	"context"
	"errors"
	"testing"

	"go-roster/internal/domain"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/staff"
	"go-roster/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKV struct {
	*storage.MemoryKV
	err error
}

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Put(context.Context, string, []byte) error   { return f.err }

func TestRepository_LoadEmpty(t *testing.T) {
	repo := staff.NewRepository(storage.NewMemoryKV())

	records := repo.Load(context.Background())

	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestRepository_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	repo := staff.NewRepository(kv)

	in := []domain.Staff{
		{ID: "1", StaffID: "T1", Name: "Asha", Status: domain.StaffStatusActive},
		{ID: "2", StaffID: "T2", Name: "Ravi", Status: domain.StaffStatusLeft},
	}
	require.NoError(t, repo.Save(ctx, in))

	raw, err := kv.Get(ctx, staff.StorageKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"staffId":"T1"`)

	out := staff.NewRepository(kv).Load(ctx)
	require.Len(t, out, 2)
	assert.Equal(t, "Ravi", out[1].Name)
}

func TestRepository_CorruptedPayloadStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Put(ctx, staff.StorageKey, []byte(`{not json`)))

	assert.Empty(t, staff.NewRepository(kv).Load(ctx))
}

func TestRepository_BackendFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("load soft fails", func(t *testing.T) {
		repo := staff.NewRepository(failingKV{MemoryKV: storage.NewMemoryKV(), err: errors.New("io")})
		assert.Empty(t, repo.Load(ctx))
	})

	t.Run("unavailable backend is a storage warning", func(t *testing.T) {
		repo := staff.NewRepository(failingKV{MemoryKV: storage.NewMemoryKV(), err: storage.ErrUnavailable})

		err := repo.Save(ctx, nil)

		require.Error(t, err)
		assert.True(t, apperror.IsStorageWarning(err))
		assert.ErrorIs(t, err, storage.ErrUnavailable)
	})

	t.Run("other failures are storage warnings", func(t *testing.T) {
		repo := staff.NewRepository(failingKV{MemoryKV: storage.NewMemoryKV(), err: errors.New("disk full")})

		err := repo.Save(ctx, []domain.Staff{{ID: "1"}})

		assert.True(t, apperror.IsStorageWarning(err))
	})
}

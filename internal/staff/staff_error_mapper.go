package staff

import (
	"errors"
	"net/http"

	"go-roster/internal/shared/apperror"
	"go-roster/internal/storage"
)

// mapRepositoryError turns any persistence failure into a storage warning: the
// in-memory roster already holds the change.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsStorageWarning(err) {
		return err
	}
	if errors.Is(err, storage.ErrUnavailable) {
		return apperror.Wrap(err,
			apperror.CodeStorageWarning,
			"Storage is unavailable, the change is kept for this session only",
			http.StatusOK,
		)
	}
	return apperror.StorageWarning(err)
}

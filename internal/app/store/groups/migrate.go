// internal/app/store/groups/migrate.go
package groupstore

import (
	"context"
	"errors"

	"github.com/dalemusser/classhub/internal/app/store/kv"
	"go.uber.org/zap"
)

// MigrateLegacy moves data stored under LegacyKey to the user's scoped key.
// It does nothing if the scoped key already exists or there is no legacy
// data. The legacy key is removed after a successful copy, so only the first
// user to load claims it. It reports whether a copy happened.
func MigrateLegacy(ctx context.Context, backend kv.Store, userID string, logger *zap.Logger) (bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scoped := Key(userID)

	_, exists, err := backend.Get(ctx, scoped)
	if err != nil {
		return false, errors.Join(ErrStorageUnavailable, err)
	}
	if exists {
		return false, nil
	}

	legacy, found, err := backend.Get(ctx, LegacyKey)
	if err != nil {
		return false, errors.Join(ErrStorageUnavailable, err)
	}
	if !found {
		return false, nil
	}

	if err := backend.Set(ctx, scoped, legacy); err != nil {
		return false, errors.Join(ErrStorageUnavailable, err)
	}
	if err := backend.Remove(ctx, LegacyKey); err != nil {
		// the copy landed; a leftover legacy key is harmless because the
		// scoped key now exists
		logger.Warn("legacy group key not removed after migration",
			zap.String("user_id", userID), zap.Error(err))
	}

	logger.Info("migrated legacy group data", zap.String("user_id", userID))
	return true, nil
}

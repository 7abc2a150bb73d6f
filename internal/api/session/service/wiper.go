package sessionService

import (
	sessionRepository "VirtualMirror/internal/api/session/repository"
	"VirtualMirror/pkg/kv"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// DataWiper removes everything the user left behind: the session gate flags,
// the cached profile and measurements, and the try-on rows. Consent records
// and device settings are deliberately left in place. Idempotent, so the two
// inactivity timers can both fire without harm.
type DataWiper struct {
	log         *logrus.Logger
	sessionRepo sessionRepository.Repository
	store       kv.IStore
}

func NewDataWiper(log *logrus.Logger, sessionRepo sessionRepository.Repository, store kv.IStore) *DataWiper {
	return &DataWiper{
		log:         log,
		sessionRepo: sessionRepo,
		store:       store,
	}
}

func (w *DataWiper) Wipe(ctx context.Context) error {
	var firstErr error

	if err := w.store.Delete(ctx,
		kv.KeyAuthenticated,
		kv.KeyTermsAccepted,
		kv.KeyGDPRAccepted,
	); err != nil {
		w.log.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to delete session flags during wipe")
		firstErr = err
	}

	if err := w.store.DeleteByPrefix(ctx, kv.KeyPrefixProfile); err != nil {
		w.log.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to delete profile data during wipe")
		if firstErr == nil {
			firstErr = err
		}
	}

	repo, err := w.sessionRepo.NewClient(true)
	if err != nil {
		w.log.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to open transaction during wipe")
		if firstErr == nil {
			firstErr = err
		}
		return firstErr
	}

	// Children first, tryons carry the foreign key.
	if err := repo.UserData.DeleteGenerationResults(ctx); err != nil {
		_ = repo.Rollback()
		if firstErr == nil {
			firstErr = err
		}
		return firstErr
	}

	if err := repo.UserData.DeleteTryOns(ctx); err != nil {
		_ = repo.Rollback()
		if firstErr == nil {
			firstErr = err
		}
		return firstErr
	}

	if err := repo.Commit(); err != nil {
		if firstErr == nil {
			firstErr = err
		}
		return firstErr
	}

	w.log.Info("User data wipe completed")
	return firstErr
}

package settingsService

import (
	"VirtualMirror/internal/api/settings"
	"VirtualMirror/pkg/kv"
	"context"

	"github.com/sirupsen/logrus"
)

type ISettingsService interface {
	GetAPIConfig(ctx context.Context) (settings.APIConfigResponse, error)
	SetAPIConfig(ctx context.Context, cfg settings.APIConfig) error
	ResolveFalKey(ctx context.Context) string

	GetPermissions(ctx context.Context) (settings.Permissions, error)
	SetPermissions(ctx context.Context, raw []byte) (settings.Permissions, error)

	GetGDPRConfig(ctx context.Context) (settings.GDPRConfig, error)
	SetGDPRConfig(ctx context.Context, cfg settings.GDPRConfig) error

	GetConsentText(ctx context.Context) (string, error)
	SetConsentText(ctx context.Context, text string) error

	WelcomeVoiceSeen(ctx context.Context) (bool, error)
	MarkWelcomeVoiceSeen(ctx context.Context) error
}

type settingsService struct {
	log   *logrus.Logger
	store kv.IStore
}

func New(log *logrus.Logger, store kv.IStore) ISettingsService {
	return &settingsService{
		log:   log,
		store: store,
	}
}

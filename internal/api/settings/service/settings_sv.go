package settingsService

import (
	"VirtualMirror/internal/api/settings"
	"VirtualMirror/pkg/kv"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/sirupsen/logrus"
)

// Settings persist indefinitely: they are device configuration, not user
// data, so the inactivity wipe leaves them alone.

func (s *settingsService) GetAPIConfig(ctx context.Context) (settings.APIConfigResponse, error) {
	cfg, err := s.loadAPIConfig(ctx)
	if err != nil {
		return settings.APIConfigResponse{}, err
	}

	// Keys themselves never leave the server, only their presence.
	return settings.APIConfigResponse{
		FalKeySet:    cfg.FalKey != "",
		OpenAIKeySet: cfg.OpenAIKey != "",
		ElevenKeySet: cfg.ElevenKey != "",
		VideoEngine:  cfg.VideoEngine,
	}, nil
}

func (s *settingsService) SetAPIConfig(ctx context.Context, cfg settings.APIConfig) error {
	current, err := s.loadAPIConfig(ctx)
	if err != nil {
		return err
	}

	// Blank fields mean "keep what is stored", so a client can update one
	// key without re-submitting the others.
	if cfg.FalKey == "" {
		cfg.FalKey = current.FalKey
	}
	if cfg.OpenAIKey == "" {
		cfg.OpenAIKey = current.OpenAIKey
	}
	if cfg.ElevenKey == "" {
		cfg.ElevenKey = current.ElevenKey
	}
	if cfg.VideoEngine == "" {
		cfg.VideoEngine = current.VideoEngine
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return s.store.Set(ctx, kv.KeyAPIConfig, string(raw), 0)
}

// ResolveFalKey prefers the environment over the persisted default, so an
// operator override on the host always wins.
func (s *settingsService) ResolveFalKey(ctx context.Context) string {
	if key := os.Getenv("FAL_KEY"); key != "" {
		return key
	}

	cfg, err := s.loadAPIConfig(ctx)
	if err != nil {
		return ""
	}
	return cfg.FalKey
}

func (s *settingsService) loadAPIConfig(ctx context.Context) (settings.APIConfig, error) {
	raw, err := s.store.Get(ctx, kv.KeyAPIConfig)
	if errors.Is(err, kv.ErrNotFound) {
		return settings.APIConfig{}, nil
	}
	if err != nil {
		return settings.APIConfig{}, err
	}

	var cfg settings.APIConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Stored api configuration is unreadable, treating as empty")
		return settings.APIConfig{}, nil
	}

	return cfg, nil
}

func (s *settingsService) GetPermissions(ctx context.Context) (settings.Permissions, error) {
	raw, err := s.store.Get(ctx, kv.KeyPermissions)
	if errors.Is(err, kv.ErrNotFound) {
		return settings.Permissions{}, nil
	}
	if err != nil {
		return settings.Permissions{}, err
	}

	var perms settings.Permissions
	if err := json.Unmarshal([]byte(raw), &perms); err != nil {
		return settings.Permissions{}, settings.ErrInvalidPermissionsPayload
	}

	return perms, nil
}

// SetPermissions validates the raw payload before touching the store. A
// malformed payload leaves the previously stored values untouched and the
// caller gets those previous values back alongside the error.
func (s *settingsService) SetPermissions(ctx context.Context, raw []byte) (settings.Permissions, error) {
	previous, prevErr := s.GetPermissions(ctx)

	var incoming settings.Permissions
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&incoming); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Rejected malformed permissions payload")
		if prevErr != nil {
			return settings.Permissions{}, settings.ErrInvalidPermissionsPayload
		}
		return previous, settings.ErrInvalidPermissionsPayload
	}

	encoded, err := json.Marshal(incoming)
	if err != nil {
		return previous, err
	}

	if err := s.store.Set(ctx, kv.KeyPermissions, string(encoded), 0); err != nil {
		return previous, err
	}

	return incoming, nil
}

func (s *settingsService) GetGDPRConfig(ctx context.Context) (settings.GDPRConfig, error) {
	raw, err := s.store.Get(ctx, kv.KeyGDPRConfig)
	if errors.Is(err, kv.ErrNotFound) {
		return defaultGDPRConfig(), nil
	}
	if err != nil {
		return settings.GDPRConfig{}, err
	}

	var cfg settings.GDPRConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return defaultGDPRConfig(), nil
	}

	return cfg, nil
}

func (s *settingsService) SetGDPRConfig(ctx context.Context, cfg settings.GDPRConfig) error {
	if cfg.RetentionMinutes < 0 {
		return settings.ErrInvalidGDPRConfig
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	return s.store.Set(ctx, kv.KeyGDPRConfig, string(raw), 0)
}

func (s *settingsService) GetConsentText(ctx context.Context) (string, error) {
	raw, err := s.store.Get(ctx, kv.KeyGDPRConsentText)
	if errors.Is(err, kv.ErrNotFound) {
		return "", settings.ErrSettingNotFound
	}
	if err != nil {
		return "", err
	}
	return raw, nil
}

func (s *settingsService) SetConsentText(ctx context.Context, text string) error {
	return s.store.Set(ctx, kv.KeyGDPRConsentText, text, 0)
}

func (s *settingsService) WelcomeVoiceSeen(ctx context.Context) (bool, error) {
	raw, err := s.store.Get(ctx, kv.KeyWelcomeVoiceSeen)
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return raw == "true", nil
}

func (s *settingsService) MarkWelcomeVoiceSeen(ctx context.Context) error {
	return s.store.Set(ctx, kv.KeyWelcomeVoiceSeen, "true", 0)
}

func defaultGDPRConfig() settings.GDPRConfig {
	return settings.GDPRConfig{
		Enabled:           true,
		RetentionMinutes:  5,
		RequireSignature:  true,
		SendReceiptEmails: true,
	}
}

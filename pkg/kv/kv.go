package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Persisted key families. Everything under KeyPrefixProfile plus the session
// flag keys is deleted by the inactivity wipe; the settings keys survive it.
const (
	KeyAuthenticated    = "mirror:flags:authenticated"
	KeyTermsAccepted    = "mirror:flags:terms_accepted"
	KeyGDPRAccepted     = "mirror:flags:gdpr_accepted"
	KeyAPIConfig        = "mirror:settings:api_keys"
	KeyPermissions      = "mirror:settings:android_permissions"
	KeyGDPRConfig       = "mirror:settings:gdpr_config"
	KeyGDPRConsentText  = "mirror:settings:gdpr_consent_text"
	KeyWelcomeVoiceSeen = "mirror:settings:welcome_voice_shown"
	KeyPrefixProfile    = "mirror:profile:"
)

var ErrNotFound = redis.Nil

type IStore interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type redisStore struct {
	client *redis.Client
}

func New() IStore {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisStore{client: client}
}

func (r *redisStore) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	err := r.client.Set(ctx, key, value, expiration).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error setting key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", err
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error getting key %s: %v", key, err))
		return "", err
	}
	return val, nil
}

func (r *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	// DEL of absent keys returns 0; deleting an already-empty set is a no-op,
	// which keeps the wipe idempotent when its two timers race.
	result, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error deleting keys: %v", err))
		return err
	}

	if result == 0 {
		logrus.Debug("No keys found for deletion")
	}

	return nil
}

func (r *redisStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			logrus.Error(fmt.Sprintf("Error scanning keys with prefix %s: %v", prefix, err))
			return err
		}

		if len(keys) > 0 {
			if err := r.Delete(ctx, keys...); err != nil {
				return err
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

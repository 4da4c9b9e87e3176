package waitlist

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/gymsimple/internal/constants"
)

var (
	// ErrNotFound is returned when no webhook URL is stored in the keyring
	ErrNotFound = errors.New("webhook URL not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetWebhookURL retrieves the webhook URL from the OS keyring
func GetWebhookURL() (string, error) {
	url, err := keyring.Get(constants.AppName, constants.KeyringWebhookUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return url, nil
}

func SetWebhookURL(url string) error {
	if url == "" {
		return errors.New("webhook URL cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.KeyringWebhookUser, url); err != nil {
		return fmt.Errorf("failed to store webhook URL in keyring: %w", err)
	}
	return nil
}

func DeleteWebhookURL() error {
	err := keyring.Delete(constants.AppName, constants.KeyringWebhookUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete webhook URL from keyring: %w", err)
	}
	return nil
}

// ResolveWebhookURL prefers the configured URL and falls back to the keyring
func ResolveWebhookURL(cfg *Config) (string, error) {
	if cfg.Webhook.URL != "" {
		return cfg.Webhook.URL, nil
	}
	return GetWebhookURL()
}

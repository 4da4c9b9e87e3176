package storage

import (
	"errors"

	"github.com/julianstephens/gymsimple/internal/constants"
)

var (
	// ErrNotInitialized is returned by Load when the data file does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'gymsimple init' first")
	// ErrNotLoaded is returned when an item is accessed before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrKeyNotFound is returned by GetItem for keys that were never written
	ErrKeyNotFound = errors.New("key not found")
)

// Provider is a device-local key/value store holding JSON documents.
// A failed SetItem or RemoveItem leaves the previously stored value in place.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items
	GetItem(key constants.StorageKey) ([]byte, error)
	SetItem(key constants.StorageKey, value []byte) error
	RemoveItem(key constants.StorageKey) error
	Keys() ([]constants.StorageKey, error)

	// Utils
	GetConfigPath() string
}

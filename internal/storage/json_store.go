package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/julianstephens/gymsimple/internal/constants"
)

type Store struct {
	Version int                        `json:"version"`
	Items   map[string]json.RawMessage `json:"items"`
}

// JSONStore keeps every key in a single JSON file
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Items:   make(map[string]json.RawMessage),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Items == nil {
		store.Items = make(map[string]json.RawMessage)
	}
	s.store = store
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetItem(key constants.StorageKey) ([]byte, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	value, ok := s.store.Items[string(key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return slices.Clone(value), nil
}

func (s *JSONStore) SetItem(key constants.StorageKey, value []byte) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}

	prev, had := s.store.Items[string(key)]
	s.store.Items[string(key)] = slices.Clone(value)
	if err := s.save(); err != nil {
		s.restore(key, prev, had)
		return err
	}
	return nil
}

func (s *JSONStore) RemoveItem(key constants.StorageKey) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	prev, had := s.store.Items[string(key)]
	if !had {
		return nil
	}
	delete(s.store.Items, string(key))
	if err := s.save(); err != nil {
		s.restore(key, prev, had)
		return err
	}
	return nil
}

func (s *JSONStore) restore(key constants.StorageKey, prev json.RawMessage, had bool) {
	if had {
		s.store.Items[string(key)] = prev
	} else {
		delete(s.store.Items, string(key))
	}
}

func (s *JSONStore) Keys() ([]constants.StorageKey, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]constants.StorageKey, 0, len(s.store.Items))
	for k := range s.store.Items {
		keys = append(keys, constants.StorageKey(k))
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/lock"
	"github.com/julianstephens/gymsimple/internal/storage"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show data file path."`
	Keys   *DebugKeysCmd   `cmd:"" help:"List stored keys."`
	Dump   *DebugDumpCmd   `cmd:"" help:"Dump a stored value as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	path := ctx.Store.GetConfigPath()

	// Output in machine-readable format
	output := map[string]string{
		"path": path,
		"lock": lock.PathFor(path),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Storage key to dump (exercises, workout-sessions, settings, tags, reminders)."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	out, err := dumpKey(ctx.Store, constants.StorageKey(cmd.Key))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func dumpKey(store storage.Provider, key constants.StorageKey) (string, error) {
	data, err := store.GetItem(key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", fmt.Errorf("key not found: %s", key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("stored value for %s is not valid JSON: %w", key, err)
	}
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return string(jsonBytes), nil
}

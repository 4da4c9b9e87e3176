// Package lock keeps a second interactive session off the same data file.
package lock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrLocked means another live gymsimple process holds the data file
var ErrLocked = errors.New("data file is in use by another gymsimple process")

type Lock struct {
	path string
	pid  int
}

// PathFor returns the lockfile that guards dataPath
func PathFor(dataPath string) string {
	return dataPath + constants.LockfileSuffix
}

// Acquire creates the lockfile for dataPath. A lockfile left behind by a process
// that is gone, or that is not gymsimple, is taken over.
func Acquire(dataPath string) (*Lock, error) {
	path := PathFor(dataPath)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	l := &Lock{path: path, pid: getpidFunc()}
	content := fmt.Sprintf("%d|%s", l.pid, constants.AppName)

	// A second pass only happens after a stale lockfile was removed
	for range 2 {
		err := createLockfile(path, content)
		if err == nil {
			logger.Debug("Acquired lock", "path", path, "pid", l.pid)
			return l, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to write lockfile: %w", err)
		}

		pid, err := readLockfile(path)
		switch {
		case err == nil:
			if pid == l.pid {
				return l, nil
			}
			if isLive(pid) {
				return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
			}
			logger.Warn("Removing stale lockfile", "path", path, "pid", pid)
		case errors.Is(err, os.ErrNotExist):
			continue
		default:
			logger.Warn("Replacing unreadable lockfile", "path", path, "error", err)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, ErrLocked
}

// createLockfile fails with fs.ErrExist when any lockfile is already present
func createLockfile(path, content string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Release removes the lockfile if it still belongs to this process
func (l *Lock) Release() error {
	pid, err := readLockfile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err == nil && pid != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

func (l *Lock) Path() string { return l.path }

// Holder reports the pid of a live process holding dataPath, or 0
func Holder(dataPath string) int {
	pid, err := readLockfile(PathFor(dataPath))
	if err != nil || !isLive(pid) {
		return 0
	}
	return pid
}

func readLockfile(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pidPart, _, _ := strings.Cut(strings.TrimSpace(string(content)), "|")
	pid, err := strconv.Atoi(pidPart)
	if err != nil || pid <= 0 {
		return 0, errors.New("lockfile is malformed")
	}
	return pid, nil
}

func isLive(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

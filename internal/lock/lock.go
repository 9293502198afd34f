package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// LockFileName is the name of the lock file placed next to the manifest
const LockFileName = ".mg-prompts.lock"

// Lock is an advisory file lock guarding one install target
type Lock struct {
	lockPath string
	fl       *flock.Flock
	acquired bool
}

// NewLock creates a new lock inside dir
func NewLock(dir string) *Lock {
	path := filepath.Join(dir, LockFileName)
	return &Lock{
		lockPath: path,
		fl:       flock.New(path),
	}
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.lockPath
}

// TryAcquire attempts to acquire the lock without blocking
// Returns false if another process holds it
func (l *Lock) TryAcquire() (bool, error) {
	if l.acquired {
		return true, nil
	}

	if err := os.MkdirAll(filepath.Dir(l.lockPath), 0755); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	ok, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to lock %s: %w", l.lockPath, err)
	}
	if !ok {
		return false, nil
	}

	// PID is informational only; the flock itself is the lock
	if err := os.WriteFile(l.lockPath, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		_ = l.fl.Unlock()
		return false, fmt.Errorf("failed to write lock file: %w", err)
	}

	l.acquired = true
	return true, nil
}

// Release releases the lock and removes the lock file
func (l *Lock) Release() error {
	if !l.acquired {
		return nil
	}

	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	l.acquired = false

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// GetPID returns the PID stored in the lock file
func (l *Lock) GetPID() (int, error) {
	data, err := os.ReadFile(l.lockPath)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in lock file: %w", err)
	}

	return pid, nil
}

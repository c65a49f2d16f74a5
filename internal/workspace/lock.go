package workspace

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"wackywebm/internal/services"
)

// OutputLock is an advisory lock on an output path.
type OutputLock struct {
	lock *flock.Flock
}

// LockOutput acquires <output>.lock without blocking. It fails with a
// validation error when another run holds it.
func LockOutput(output string) (*OutputLock, error) {
	lock := flock.New(output + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "output", "lock",
			fmt.Sprintf("another run is already writing %s", output), nil)
	}
	return &OutputLock{lock: lock}, nil
}

// Path returns the lock file location.
func (l *OutputLock) Path() string {
	return l.lock.Path()
}

// Release unlocks and removes the lock file.
func (l *OutputLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release output lock: %w", err)
	}
	if err := os.Remove(l.lock.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove output lock: %w", err)
	}
	return nil
}

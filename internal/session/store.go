package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/jaekwang-park/taskboard/internal/model"
)

// ErrNoSession is returned by FileStore.Load when nothing has been saved.
var ErrNoSession = errors.New("no saved session")

const lockTimeout = 3 * time.Second

// Record is the on-disk form of a signed-in session.
type Record struct {
	Principal model.Principal `yaml:"principal"`
	Tokens    Tokens          `yaml:"tokens"`
	SavedAt   time.Time       `yaml:"saved_at"`
}

// FileStore keeps a Record in a YAML file. Access is serialised across
// processes with an advisory lock on a sibling ".lock" file.
type FileStore struct {
	path string
	lock *flock.Flock
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
		now:  time.Now,
	}
}

// DefaultPath is the per-user session file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "taskctl", "session.yaml"), nil
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(ctx context.Context) (Record, error) {
	unlock, err := f.acquire(ctx)
	if err != nil {
		return Record{}, err
	}
	defer unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrNoSession
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to read session: %w", err)
	}
	if len(data) == 0 {
		return Record{}, ErrNoSession
	}

	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to parse session: %w", err)
	}
	if rec.Principal.ID == "" {
		return Record{}, ErrNoSession
	}
	return rec, nil
}

func (f *FileStore) Save(ctx context.Context, rec Record) error {
	unlock, err := f.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if rec.SavedAt.IsZero() {
		rec.SavedAt = f.now().UTC()
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace session: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(ctx context.Context) error {
	unlock, err := f.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

func (f *FileStore) acquire(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := f.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire session lock: %w", err)
	}
	if !locked {
		return nil, errors.New("could not acquire session lock")
	}
	return func() { _ = f.lock.Unlock() }, nil
}

// Restore moves s out of the initializing state from whatever the store
// holds. A missing record leaves s unauthenticated.
func Restore(ctx context.Context, s *Session, store *FileStore) error {
	rec, err := store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		s.Resolve()
		return nil
	}
	if err != nil {
		s.Resolve()
		return err
	}
	return s.SignIn(rec.Principal, rec.Tokens)
}

// Persist saves the signed-in state of s, or clears the store when s has no
// principal.
func Persist(ctx context.Context, s *Session, store *FileStore) error {
	p, ok := s.Principal()
	if !ok {
		return store.Clear(ctx)
	}
	return store.Save(ctx, Record{Principal: p, Tokens: s.Tokens()})
}

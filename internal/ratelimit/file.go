package ratelimit

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// FileStore keeps one timestamp file per client key under a directory,
// typically somewhere volatile like /tmp so records age out with the
// host. This matches the original single-host deployment of the
// contact form.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	// Keys are already hex hashes; keep hostile input out of the path anyway.
	key = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(s.dir, key)
}

// Get returns the recorded timestamp for key.
func (s *FileStore) Get(_ context.Context, key string) (time.Time, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	unix, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		// Treat a corrupt record as absent rather than blocking submissions.
		return time.Time{}, false, nil
	}
	return time.Unix(unix, 0), true, nil
}

// Set records t for key.
func (s *FileStore) Set(_ context.Context, key string, t time.Time) error {
	return os.WriteFile(s.path(key), []byte(strconv.FormatInt(t.Unix(), 10)), 0o600)
}

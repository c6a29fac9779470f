package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vijaysanthoshp/fintrack/internal/model"
)

// state is the on-disk session shape.
type state struct {
	SavedAt time.Time  `json:"saved_at"`
	Token   string     `json:"token"`
	User    model.User `json:"user"`
}

// Store persists the session as JSON in the user's data directory so a login
// survives across invocations.
type Store struct {
	path string
}

// NewStore creates a store rooted at path, or at the default location under
// the XDG data dir when path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		defaultPath, err := defaultStatePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve session path: %w", err)
		}
		path = defaultPath
	}
	return &Store{path: path}, nil
}

// Load reads the persisted session. A missing file is the anonymous state,
// not an error.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var saved state
	if err := json.Unmarshal(data, &saved); err != nil {
		// A corrupt session file degrades to anonymous; the user just
		// logs in again.
		slog.Warn("Discarding unreadable session file", "path", s.path, "error", err)
		return &Session{}, nil
	}

	return New(saved.Token, saved.User), nil
}

// Save writes the session to disk with owner-only permissions.
func (s *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(state{
		Token:   sess.Token(),
		User:    sess.User(),
		SavedAt: time.Now(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent file is fine.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func defaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "fintrack", "session.json"), nil
}

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrIncompleteSession is returned when attempting to save a session that is
// missing required fields.
var ErrIncompleteSession = errors.New("session: incomplete session")

const (
	sessionFile = "session.json"
	tokenFile   = "access_token"
)

// Store persists the session across process restarts within one user
// profile. Two values are kept side by side: the serialized identity and the
// raw access token. Both are written and cleared together; a session is
// considered present only when both parse cleanly.
//
// Store is safe for concurrent use. The gateway transport reads the token
// from arbitrary goroutines via http.Client, and the inactivity monitor and
// 401 handling may clear in close succession, so Clear is idempotent.
type Store struct {
	mu      sync.Mutex
	baseDir string
}

// NewStore creates a session store rooted at baseDir.
// If baseDir is empty, uses ~/.hrconsole/session/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".hrconsole", "session")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("session store initialized")

	return &Store{baseDir: baseDir}, nil
}

// Save persists sess, overwriting any prior session. The identity and the
// token are written as separate values; the identity file never contains
// the token.
func (s *Store) Save(sess Session) error {
	if !sess.Complete() {
		return ErrIncompleteSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.writeFile(sessionFile, data); err != nil {
		return err
	}
	if err := s.writeFile(tokenFile, []byte(sess.Token)); err != nil {
		// Don't leave a half-written session behind.
		os.Remove(filepath.Join(s.baseDir, sessionFile))
		return err
	}

	log.Debug().
		Int("userID", sess.UserID).
		Str("role", string(sess.Role)).
		Msg("session saved")

	return nil
}

// Load returns the current session and true, or a zero session and false
// when no session is stored. Corrupt or partially missing state degrades to
// absent; it is never surfaced as an error.
func (s *Store) Load() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Token returns the raw access token, or "" when absent.
func (s *Store) Token() string {
	sess, ok := s.Load()
	if !ok {
		return ""
	}
	return sess.Token
}

// Clear removes any stored session. Clearing an already-empty store is a
// no-op, not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{sessionFile, tokenFile} {
		if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}

	log.Debug().Msg("session cleared")

	return nil
}

// load assumes s.mu is held.
func (s *Store) load() (Session, bool) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, sessionFile))
	if err != nil {
		return Session{}, false
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		log.Debug().Err(err).Msg("stored session failed to parse, treating as absent")
		return Session{}, false
	}

	tok, err := os.ReadFile(filepath.Join(s.baseDir, tokenFile))
	if err != nil {
		// Identity without a token is not a session.
		return Session{}, false
	}
	sess.Token = strings.TrimSpace(string(tok))
	if sess.Token == "" {
		return Session{}, false
	}

	if !sess.Complete() {
		return Session{}, false
	}

	return sess, true
}

// writeFile writes atomically via a temp file, assumes s.mu is held.
func (s *Store) writeFile(name string, data []byte) error {
	path := filepath.Join(s.baseDir, name)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save %s: %w", name, err)
	}

	return nil
}

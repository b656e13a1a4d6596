package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	// sessionFile holds the JSON session blob {isAuth, isAdmin, user}.
	sessionFile = "login.json"

	// tokenFile holds the raw "Bearer <token>" string.
	tokenFile = "token"
)

// Store is the single source of truth for session state. It hydrates from
// durable storage at construction and persists every authenticated
// mutation. Reads and writes are serialized, the backing files are shared
// with nothing else.
type Store struct {
	baseDir string

	mu      sync.RWMutex
	current Session
	token   string
}

// NewStore creates a session store rooted at baseDir and hydrates any
// persisted session. A persisted session missing its token (or the other
// way around) violates the session invariant and is discarded.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".portalctl", "session")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	store := &Store{baseDir: baseDir}
	store.hydrate()

	log.Debug().Str("baseDir", baseDir).Bool("isAuth", store.current.IsAuth).Msg("session store initialized")

	return store, nil
}

// Current returns the session state.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the stored "Bearer <token>" value, or an empty string when
// unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetAuthenticated transitions the session to authenticated and persists
// both the session blob and the raw token.
func (s *Store) SetAuthenticated(user User, isAdmin bool, rawToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{IsAuth: true, IsAdmin: isAdmin, User: &user}
	token := "Bearer " + rawToken

	if err := s.persist(sess, token); err != nil {
		return err
	}

	s.current = sess
	s.token = token

	log.Info().Str("username", user.Username).Bool("isAdmin", isAdmin).Msg("session authenticated")

	return nil
}

// Clear transitions the session to unauthenticated and erases the persisted
// files. Idempotent.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Unauthenticated()
	s.token = ""

	for _, name := range []string{sessionFile, tokenFile} {
		if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}

	log.Debug().Msg("session cleared")

	return nil
}

// hydrate loads the persisted session. Any inconsistency leaves the store
// unauthenticated and removes the leftover files.
func (s *Store) hydrate() {
	sessionData, sessErr := os.ReadFile(filepath.Join(s.baseDir, sessionFile))
	tokenData, tokenErr := os.ReadFile(filepath.Join(s.baseDir, tokenFile))

	if sessErr != nil || tokenErr != nil {
		if sessErr == nil || tokenErr == nil {
			// One file without the other, drop both.
			s.removeFiles()
		}
		return
	}

	var sess Session
	if err := json.Unmarshal(sessionData, &sess); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable persisted session")
		s.removeFiles()
		return
	}

	token := string(tokenData)
	if !sess.IsAuth || sess.User == nil || token == "" {
		s.removeFiles()
		return
	}

	s.current = sess
	s.token = token
}

func (s *Store) removeFiles() {
	for _, name := range []string{sessionFile, tokenFile} {
		os.Remove(filepath.Join(s.baseDir, name))
	}
}

// persist writes both files atomically via temp-file renames.
func (s *Store) persist(sess Session, token string) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.writeFile(sessionFile, data); err != nil {
		return err
	}
	if err := s.writeFile(tokenFile, []byte(token)); err != nil {
		// Half-written state violates the invariant, drop both.
		s.removeFiles()
		return err
	}

	return nil
}

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

package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

const sessionFileName = "session.json"

// Store persists the session as a single JSON blob on disk. Absence of the
// blob means unauthenticated.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFileName)
}

// Load reads the persisted session. A missing blob reports ok=false without
// an error.
func (s *Store) Load() (*Session, bool, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("session: read store: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, false, fmt.Errorf("session: decode store: %w", err)
	}
	if sess.Access == "" {
		return nil, false, nil
	}
	if claims, err := DecodeClaims(sess.Access); err == nil {
		sess.Claims = claims
	}
	return &sess, true, nil
}

// Save persists the session blob with user-only permissions.
func (s *Store) Save(sess *Session) error {
	if sess == nil {
		return errors.New("session: nothing to save")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("session: create store dir: %w", err)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode store: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("session: write store: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: clear store: %w", err)
	}
	return nil
}

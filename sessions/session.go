package sessions

import (
	"os"
	"path/filepath"
	"time"

	"github.com/jrsteele09/go-stock-server/internal/errors"
	"gopkg.in/yaml.v3"
)

// Session is the client's view of a login: the last issued credential.
// The server keeps no record of it.
type Session struct {
	Token    string    `yaml:"token"`    // Bearer credential returned by /login
	Username string    `yaml:"username"` // Who logged in, for display only
	IssuedAt time.Time `yaml:"issued_at"`
	APIURL   string    `yaml:"api_url"` // Server the credential belongs to
}

// Store persists the session across client runs
type Store interface {
	// Load returns nil, nil when there is no session
	Load() (*Session, error)
	Save(session *Session) error
	Clear() error
}

// FileStore keeps the session in a YAML file readable only by the owner
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns ~/.stockctl/session.yaml, falling back to the working directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".stockctl", "session.yaml")
	}
	return filepath.Join(home, ".stockctl", "session.yaml")
}

func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[FileStore Load] read %s", fs.path)
	}

	var session Session
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrapf(err, "[FileStore Load] decode %s", fs.path)
	}
	if session.Token == "" {
		return nil, nil
	}
	return &session, nil
}

func (fs *FileStore) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrapf(err, "[FileStore Save] create folder")
	}
	data, err := yaml.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "[FileStore Save] encode")
	}
	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		return errors.Wrapf(err, "[FileStore Save] write %s", fs.path)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session is not an error.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "[FileStore Clear] remove %s", fs.path)
	}
	return nil
}

package filerepo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/go-stock-server/internal/errors"
	"github.com/jrsteele09/go-stock-server/products"
	"github.com/rs/zerolog/log"
)

var _ products.Repo = (*FileRepo)(nil)

// FileRepo keeps the product collection in a single JSON document on disk.
type FileRepo struct {
	path string
	lock sync.RWMutex
}

// New creates the parent directory if needed and makes sure the document
// exists, writing an empty collection when it does not.
func New(path string) (*FileRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data folder: %v", errors.ErrStorage, err)
	}
	r := &FileRepo{path: path}
	if _, err := r.Load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) Path() string {
	return r.path
}

// Load reads the whole document. A missing or empty file is initialised to
// the empty collection; a file that does not parse is a storage failure.
func (r *FileRepo) Load() (*products.Collection, error) {
	r.lock.RLock()
	data, err := os.ReadFile(r.path)
	r.lock.RUnlock()

	switch {
	case errors.Is(err, fs.ErrNotExist), err == nil && len(bytes.TrimSpace(data)) == 0:
		return r.initialise()
	case err != nil:
		return nil, fmt.Errorf("%w: read %s: %v", errors.ErrStorage, r.path, err)
	}
	return r.decode(data)
}

// Save replaces the document with c.
func (r *FileRepo) Save(c *products.Collection) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.write(c)
}

func (r *FileRepo) initialise() (*products.Collection, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	// Another caller may have initialised the file while we waited.
	data, err := os.ReadFile(r.path)
	if err == nil && len(bytes.TrimSpace(data)) > 0 {
		return r.decode(data)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: read %s: %v", errors.ErrStorage, r.path, err)
	}

	c := products.NewCollection()
	if err := r.write(c); err != nil {
		return nil, err
	}
	log.Info().Str("path", r.path).Msg("initialised empty product store")
	return c, nil
}

func (r *FileRepo) decode(data []byte) (*products.Collection, error) {
	var c products.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", errors.ErrStorage, r.path, err)
	}
	if c.Products == nil {
		c.Products = make([]products.Product, 0)
	}
	return &c, nil
}

// write must be called with the write lock held. The document is written to a
// temporary file in the same directory and renamed over the target.
func (r *FileRepo) write(c *products.Collection) (returnError error) {
	if c.Products == nil {
		c = products.NewCollection()
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", errors.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", errors.ErrStorage, err)
	}
	defer func() {
		if returnError != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %v", errors.ErrStorage, tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", errors.ErrStorage, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", errors.ErrStorage, tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", errors.ErrStorage, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", errors.ErrStorage, r.path, err)
	}
	return nil
}

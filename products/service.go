package products

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-stock-server/internal/errors"
)

// NewIDFunc generates product ids. It can be overridden in tests.
var NewIDFunc = uuid.NewString

// Service implements the product operations over a Repo.
// Create, Update and Delete hold writeLock for the whole load-modify-save cycle,
// so mutations within one process never lose each other's updates.
type Service struct {
	repo      Repo
	writeLock sync.Mutex
}

func NewService(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// List returns every product in insertion order.
func (s *Service) List() ([]Product, error) {
	c, err := s.repo.Load()
	if err != nil {
		return nil, errors.Wrapf(err, "[Service List] load")
	}
	if c.Products == nil {
		return []Product{}, nil
	}
	return c.Products, nil
}

// Create validates the input, assigns a fresh id and appends the product.
func (s *Service) Create(in Input) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created Product
	err := s.mutate(func(c *Collection) error {
		created = Product{ID: nextID(c)}
		in.apply(&created)
		c.Products = append(c.Products, created)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "[Service Create]")
	}
	return &created, nil
}

// Update replaces sku, name and quantity of an existing product in place.
func (s *Service) Update(id string, in Input) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var updated Product
	err := s.mutate(func(c *Collection) error {
		idx := c.IndexOf(id)
		if idx < 0 {
			return fmt.Errorf("%w: %s", errors.ErrNotFound, id)
		}
		in.apply(&c.Products[idx])
		updated = c.Products[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a product, keeping the relative order of the rest.
func (s *Service) Delete(id string) error {
	return s.mutate(func(c *Collection) error {
		idx := c.IndexOf(id)
		if idx < 0 {
			return fmt.Errorf("%w: %s", errors.ErrNotFound, id)
		}
		c.Products = append(c.Products[:idx], c.Products[idx+1:]...)
		return nil
	})
}

// mutate runs one read-modify-write cycle. Nothing is saved when fn fails.
func (s *Service) mutate(fn func(c *Collection) error) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	c, err := s.repo.Load()
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return s.repo.Save(c)
}

func nextID(c *Collection) string {
	for {
		id := NewIDFunc()
		if c.IndexOf(id) < 0 {
			return id
		}
	}
}

package repofake

import (
	"sync"

	"github.com/jrsteele09/go-stock-server/products"
)

var _ products.Repo = (*FakeProductRepo)(nil)

// FakeProductRepo is an in-memory products.Repo that counts calls and can be
// told to fail.
type FakeProductRepo struct {
	collection *products.Collection
	loads      int
	saves      int
	err        error
	lock       sync.Mutex
}

func NewFakeProductRepo(seed ...products.Product) *FakeProductRepo {
	c := products.NewCollection()
	c.Products = append(c.Products, seed...)
	return &FakeProductRepo{collection: c}
}

func (r *FakeProductRepo) Load() (*products.Collection, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.loads++
	if r.err != nil {
		return nil, r.err
	}
	return r.collection.Clone(), nil
}

func (r *FakeProductRepo) Save(c *products.Collection) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.saves++
	if r.err != nil {
		return r.err
	}
	r.collection = c.Clone()
	return nil
}

// SetError makes every subsequent Load and Save fail with err. Pass nil to reset.
func (r *FakeProductRepo) SetError(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.err = err
}

func (r *FakeProductRepo) Loads() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.loads
}

func (r *FakeProductRepo) Saves() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.saves
}

// Snapshot returns a copy of the stored products.
func (r *FakeProductRepo) Snapshot() []products.Product {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.collection.Clone().Products
}

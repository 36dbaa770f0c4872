package products

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-stock-server/internal/errors"
	"github.com/jrsteele09/go-stock-server/internal/utils"
)

// Product is a single stock-keeping unit. ID is assigned by the Service and never changes.
type Product struct {
	ID       string `json:"id"`
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Collection is the whole system of record, persisted as one document.
type Collection struct {
	Products []Product `json:"products"`
}

func NewCollection() *Collection {
	return &Collection{Products: make([]Product, 0)}
}

// IndexOf returns the position of the product with the given id, or -1.
func (c *Collection) IndexOf(id string) int {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with c.
func (c *Collection) Clone() *Collection {
	clone := &Collection{Products: make([]Product, len(c.Products))}
	copy(clone.Products, c.Products)
	return clone
}

// Input is the mutable payload of a product as supplied by a caller.
// A nil Quantity means the field was absent or could not be read as an integer.
type Input struct {
	SKU      string
	Name     string
	Quantity *int
}

// Validate checks that sku and name are set and quantity is a non-negative integer.
func (in Input) Validate() error {
	var invalid []string
	if strings.TrimSpace(in.SKU) == "" {
		invalid = append(invalid, "sku")
	}
	if strings.TrimSpace(in.Name) == "" {
		invalid = append(invalid, "name")
	}
	if in.Quantity == nil || *in.Quantity < 0 {
		invalid = append(invalid, "quantity")
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%w: missing or invalid fields (%s)", errors.ErrInvalidInput, strings.Join(invalid, ", "))
	}
	return nil
}

// apply copies the payload onto p, leaving the id untouched.
func (in Input) apply(p *Product) {
	p.SKU = in.SKU
	p.Name = in.Name
	p.Quantity = utils.Value(in.Quantity)
}

// ParseQuantity reads a raw JSON quantity. Integers and strings holding an
// integer are accepted; anything else, including null, yields nil.
func ParseQuantity(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
		text = strings.TrimSpace(text)
	}

	if n, err := strconv.Atoi(text); err == nil {
		return utils.Ptr(n)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	return utils.Ptr(int(f))
}

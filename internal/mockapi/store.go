package mockapi

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/billie-coop/vitrine/internal/catalog"
	"github.com/billie-coop/vitrine/internal/csync"
)

// Store keeps products in memory in creation order.
type Store struct {
	products *csync.OrderedMap[int, catalog.Product]
}

// NewStore creates a store holding the given products.
func NewStore(seed []catalog.Product) *Store {
	s := &Store{products: csync.NewOrderedMap[int, catalog.Product]()}
	for _, p := range seed {
		s.products.Set(p.ID, p)
	}
	return s
}

// seedFile mirrors json-server's db.json layout.
type seedFile struct {
	Products []catalog.Product `json:"products"`
}

// LoadSeed reads a db.json style file. Records without a positive ID get the next
// free one.
func LoadSeed(path string) ([]catalog.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	next := catalog.MaxID(seed.Products) + 1
	seen := make(map[int]bool, len(seed.Products))
	for i := range seed.Products {
		id := seed.Products[i].ID
		if id <= 0 || seen[id] {
			seed.Products[i].ID = next
			next++
		}
		seen[seed.Products[i].ID] = true
	}
	return seed.Products, nil
}

// Reset replaces every product with seed, keeping seed order.
func (s *Store) Reset(seed []catalog.Product) {
	s.products.Reset(func(set func(int, catalog.Product)) {
		for _, p := range seed {
			set(p.ID, p)
		}
	})
}

// MarshalJSON encodes the products as a JSON array in creation order, the shape
// json-server serves for GET /products.
func (s *Store) MarshalJSON() ([]byte, error) {
	return s.products.MarshalJSON()
}

// Get returns one product.
func (s *Store) Get(id int) (catalog.Product, bool) {
	return s.products.Get(id)
}

// Create stores the draft under max(ID)+1.
func (s *Store) Create(d catalog.Draft) catalog.Product {
	var created catalog.Product
	s.products.Mutate(func(current []catalog.Product, set func(int, catalog.Product)) {
		created = d.Product(catalog.MaxID(current) + 1)
		set(created.ID, created)
	})
	return created
}

// Replace overwrites an existing product and reports whether it existed.
func (s *Store) Replace(id int, d catalog.Draft) (catalog.Product, bool) {
	p := d.Product(id)
	if !s.products.Update(id, p) {
		return catalog.Product{}, false
	}
	return p, true
}

// Delete removes a product and reports whether it existed.
func (s *Store) Delete(id int) bool {
	return s.products.Delete(id)
}

// Len returns the number of products.
func (s *Store) Len() int {
	return s.products.Len()
}

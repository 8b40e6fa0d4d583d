package catalog

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	defaultImageURL     = "/static/images/default-product.jpg"
	defaultRating       = 5
	defaultBrand        = "Generic"
	defaultWarranty     = "1 Year"
	defaultShippingInfo = "Standard Shipping"
	defaultRestockDate  = "2025-02-01"

	dateLayout = "2006-01-02"
)

// MemStore keeps products in insertion order with an id index. One RWMutex
// guards both, so id assignment and the append are a single critical section.
type MemStore struct {
	mu         sync.RWMutex
	order      []int64
	byID       map[int64]Product
	categories []Category

	now func() time.Time
}

var _ Store = (*MemStore)(nil)

// NewMemStore seeds a store. Seed products keep their ids and order; a
// non-positive or repeated id is rejected.
func NewMemStore(categories []Category, seed []Product) (*MemStore, error) {
	s := &MemStore{
		order:      make([]int64, 0, len(seed)),
		byID:       make(map[int64]Product, len(seed)),
		categories: append([]Category(nil), categories...),
		now:        time.Now,
	}

	for _, p := range seed {
		if p.ID <= 0 {
			return nil, fmt.Errorf("seed product %q: id %d is not positive", p.Name, p.ID)
		}
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("seed product %q: duplicate id %d", p.Name, p.ID)
		}
		s.order = append(s.order, p.ID)
		s.byID[p.ID] = p.clone()
	}

	return s, nil
}

func (s *MemStore) ListAll() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].clone())
	}
	return out
}

func (s *MemStore) GetByID(id int64) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return p.clone(), true
}

// ListRelated returns up to limit products in p's category, excluding p.
func (s *MemStore) ListRelated(p Product, limit int) []Product {
	if limit <= 0 {
		return []Product{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, limit)
	for _, id := range s.order {
		if len(out) == limit {
			break
		}
		if id == p.ID {
			continue
		}
		if other := s.byID[id]; other.Category == p.Category {
			out = append(out, other.clone())
		}
	}
	return out
}

func (s *MemStore) CountDistinctCategories() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countCategoriesLocked()
}

// ListWithCategoryCount is ListAll and CountDistinctCategories taken under
// one read lock, so the two always describe the same collection.
func (s *MemStore) ListWithCategoryCount() ([]Product, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].clone())
	}
	return out, s.countCategoriesLocked()
}

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *MemStore) countCategoriesLocked() int {
	seen := make(map[string]struct{})
	for _, p := range s.byID {
		seen[p.Category] = struct{}{}
	}
	return len(seen)
}

func (s *MemStore) Categories() []Category {
	return append([]Category(nil), s.categories...)
}

func (s *MemStore) Insert(d Draft) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextIDLocked()

	sku := d.SKU
	if sku == "" {
		sku = DefaultSKU(id)
	}

	category := s.categoryName(d.CategoryID)

	p := Product{
		ID:           id,
		Name:         d.Name,
		Price:        d.Price,
		Description:  d.Description,
		Category:     category,
		CategoryID:   d.CategoryID,
		CategoryName: category,
		Stock:        d.Stock,
		ImageURL:     defaultImageURL,
		Rating:       defaultRating,
		SKU:          sku,
		Brand:        defaultBrand,
		Warranty:     defaultWarranty,
		ShippingInfo: defaultShippingInfo,
		RestockDate:  defaultRestockDate,
		LastUpdated:  s.now().Format(dateLayout),
		Specifications: []Spec{
			{Name: "SKU", Value: sku},
			{Name: "Stock", Value: strconv.FormatInt(d.Stock, 10)},
		},
		Reviews: []Review{},
	}

	s.order = append(s.order, id)
	s.byID[id] = p
	return p.clone()
}

func (s *MemStore) Delete(id int64) (Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}

	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return p, true
}

// nextIDLocked is max(id)+1 over the live collection, so deleting the
// highest id lets it be issued again.
func (s *MemStore) nextIDLocked() int64 {
	var highest int64
	for id := range s.byID {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}

func (s *MemStore) categoryName(id int64) string {
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return UncategorizedName
}

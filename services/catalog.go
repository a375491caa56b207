package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/greenbasket/produce-orders/models"
)

// CatalogStore holds the sellable items as a single JSON document on disk.
// Every mutation rewrites the whole file; the catalog is small and mutated
// by a single admin, so there is no per-record storage.
type CatalogStore struct {
	path string
	mu   sync.RWMutex
}

func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// NewItem carries the fields of an item creation request. Pointer fields
// distinguish "absent" from zero values so defaults can be applied.
type NewItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	NameAr    string   `json:"nameAr"`
	Category  string   `json:"category"`
	Price     *float64 `json:"price"`
	Unit      string   `json:"unit"`
	ImageURL  string   `json:"imageUrl"`
	Active    *bool    `json:"active"`
	SortOrder *int     `json:"sortOrder"`
}

// ListActive returns the active items in display order.
func (s *CatalogStore) ListActive() ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}

	active := make([]models.Item, 0, len(items))
	for _, item := range items {
		if item.Active {
			active = append(active, item)
		}
	}
	sortItems(active)
	return active, nil
}

// ListAll returns every item, active or not, in display order.
func (s *CatalogStore) ListAll() ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	sortItems(items)
	return items, nil
}

// Create validates and appends a new item, then rewrites the document.
func (s *CatalogStore) Create(in NewItem) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.ID == "" {
		return models.Item{}, fmt.Errorf("%w: id", ErrMissingField)
	}
	if in.Name == "" {
		return models.Item{}, fmt.Errorf("%w: name", ErrMissingField)
	}
	if in.Category == "" {
		return models.Item{}, fmt.Errorf("%w: category", ErrMissingField)
	}
	if in.Price == nil {
		return models.Item{}, fmt.Errorf("%w: price", ErrMissingField)
	}
	if in.Unit == "" {
		return models.Item{}, fmt.Errorf("%w: unit", ErrMissingField)
	}
	if *in.Price < 0 {
		return models.Item{}, ErrInvalidPrice
	}
	if !models.ValidCategory(in.Category) {
		return models.Item{}, fmt.Errorf("%w: category %q", ErrInvalidField, in.Category)
	}
	if !models.ValidUnit(in.Unit) {
		return models.Item{}, fmt.Errorf("%w: unit %q", ErrInvalidField, in.Unit)
	}

	items, err := s.load()
	if err != nil {
		return models.Item{}, err
	}
	for _, existing := range items {
		if existing.ID == in.ID {
			return models.Item{}, ErrDuplicateID
		}
	}

	item := models.Item{
		ID:        in.ID,
		Name:      in.Name,
		NameAr:    in.NameAr,
		Category:  in.Category,
		Price:     *in.Price,
		Unit:      in.Unit,
		ImageURL:  in.ImageURL,
		Active:    true,
		SortOrder: len(items),
	}
	if item.ImageURL == "" {
		item.ImageURL = models.DefaultImageURL
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	if in.SortOrder != nil {
		item.SortOrder = *in.SortOrder
	}

	items = append(items, item)
	if err := s.save(items); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// Update merges the provided fields over an existing item. The id itself is
// never overwritten.
func (s *CatalogStore) Update(id string, patch models.ItemPatch) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return models.Item{}, err
	}

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Item{}, ErrNotFound
	}

	if patch.Price != nil && *patch.Price < 0 {
		return models.Item{}, ErrInvalidPrice
	}
	if patch.Category != nil && !models.ValidCategory(*patch.Category) {
		return models.Item{}, fmt.Errorf("%w: category %q", ErrInvalidField, *patch.Category)
	}
	if patch.Unit != nil && !models.ValidUnit(*patch.Unit) {
		return models.Item{}, fmt.Errorf("%w: unit %q", ErrInvalidField, *patch.Unit)
	}

	item := items[idx]
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.NameAr != nil {
		item.NameAr = *patch.NameAr
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}
	if patch.Active != nil {
		item.Active = *patch.Active
	}
	if patch.SortOrder != nil {
		item.SortOrder = *patch.SortOrder
	}

	items[idx] = item
	if err := s.save(items); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// load reads the document; a missing file is an empty catalog. File order is
// insertion order and serves as the sortOrder tie-break.
func (s *CatalogStore) load() ([]models.Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Item{}, nil
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return items, nil
}

func (s *CatalogStore) save(items []models.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

func sortItems(items []models.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortOrder < items[j].SortOrder
	})
}

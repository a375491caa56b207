package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenbasket/produce-orders/models"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }

func newTestCatalog(t *testing.T) *CatalogStore {
	t.Helper()
	return NewCatalogStore(filepath.Join(t.TempDir(), "items.json"))
}

func seedItem(t *testing.T, store *CatalogStore, id string, price float64) models.Item {
	t.Helper()
	item, err := store.Create(NewItem{
		ID:       id,
		Name:     id,
		Category: models.CategoryVegetable,
		Price:    floatPtr(price),
		Unit:     models.UnitKg,
	})
	assert.NoError(t, err)
	return item
}

func TestCreateAppliesDefaults(t *testing.T) {
	store := newTestCatalog(t)

	item, err := store.Create(NewItem{
		ID:       "tomato",
		Name:     "Tomato",
		Category: models.CategoryVegetable,
		Price:    floatPtr(5),
		Unit:     models.UnitKg,
	})
	assert.NoError(t, err)
	assert.True(t, item.Active)
	assert.Equal(t, models.DefaultImageURL, item.ImageURL)
	assert.Equal(t, "", item.NameAr)
	assert.Equal(t, 0, item.SortOrder)

	second := seedItem(t, store, "apple", 8)
	assert.Equal(t, 1, second.SortOrder)
}

func TestCreateValidation(t *testing.T) {
	store := newTestCatalog(t)
	seedItem(t, store, "tomato", 5)

	_, err := store.Create(NewItem{ID: "tomato", Name: "Tomato", Category: "vegetable", Price: floatPtr(5), Unit: "kg"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = store.Create(NewItem{ID: "apple", Name: "Apple", Category: "fruit", Price: floatPtr(-1), Unit: "kg"})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = store.Create(NewItem{ID: "apple", Name: "Apple", Category: "fruit", Unit: "kg"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = store.Create(NewItem{Name: "Apple", Category: "fruit", Price: floatPtr(8), Unit: "kg"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = store.Create(NewItem{ID: "apple", Name: "Apple", Category: "meat", Price: floatPtr(8), Unit: "kg"})
	assert.ErrorIs(t, err, ErrInvalidField)

	// failed creates leave the catalog unchanged
	items, err := store.ListAll()
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestUpdateMergesFields(t *testing.T) {
	store := newTestCatalog(t)
	seedItem(t, store, "tomato", 5)

	updated, err := store.Update("tomato", models.ItemPatch{
		Price:  floatPtr(6.5),
		Active: boolPtr(false),
		NameAr: strPtr("طماطم"),
	})
	assert.NoError(t, err)
	assert.Equal(t, 6.5, updated.Price)
	assert.False(t, updated.Active)
	assert.Equal(t, "طماطم", updated.NameAr)
	// untouched fields survive the merge
	assert.Equal(t, "tomato", updated.Name)
	assert.Equal(t, models.UnitKg, updated.Unit)
}

func TestUpdateRejectsNegativePrice(t *testing.T) {
	store := newTestCatalog(t)
	seedItem(t, store, "tomato", 5)

	_, err := store.Update("tomato", models.ItemPatch{Price: floatPtr(-1)})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	items, _ := store.ListAll()
	assert.Equal(t, 5.0, items[0].Price)
}

func TestUpdateNotFound(t *testing.T) {
	store := newTestCatalog(t)
	_, err := store.Update("ghost", models.ItemPatch{Price: floatPtr(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrderingAndActiveFilter(t *testing.T) {
	store := newTestCatalog(t)

	// insertion order: cucumber, apple, tomato; sortOrder puts tomato first
	_, err := store.Create(NewItem{ID: "cucumber", Name: "Cucumber", Category: "vegetable", Price: floatPtr(3), Unit: "kg", SortOrder: intPtr(5)})
	assert.NoError(t, err)
	_, err = store.Create(NewItem{ID: "apple", Name: "Apple", Category: "fruit", Price: floatPtr(8), Unit: "kg", SortOrder: intPtr(5)})
	assert.NoError(t, err)
	_, err = store.Create(NewItem{ID: "tomato", Name: "Tomato", Category: "vegetable", Price: floatPtr(5), Unit: "kg", SortOrder: intPtr(1)})
	assert.NoError(t, err)

	all, err := store.ListAll()
	assert.NoError(t, err)
	assert.Equal(t, []string{"tomato", "cucumber", "apple"}, itemIDs(all))

	_, err = store.Update("cucumber", models.ItemPatch{Active: boolPtr(false)})
	assert.NoError(t, err)

	active, err := store.ListActive()
	assert.NoError(t, err)
	assert.Equal(t, []string{"tomato", "apple"}, itemIDs(active))
}

func TestCatalogSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	store := NewCatalogStore(path)
	seedItem(t, store, "tomato", 5)

	reopened := NewCatalogStore(path)
	items, err := reopened.ListAll()
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "tomato", items[0].ID)
}

func itemIDs(items []models.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

package models

// Item categories and units accepted by the catalog.
const (
	CategoryVegetable = "vegetable"
	CategoryFruit     = "fruit"

	UnitKg     = "kg"
	UnitPc     = "pc"
	UnitBundle = "bundle"
)

// DefaultImageURL is assigned when an item is created without an image.
const DefaultImageURL = "/images/placeholder.jpg"

// Item is one sellable catalog entry. The catalog is persisted as a whole
// JSON document, so the struct carries json tags only.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	NameAr    string  `json:"nameAr"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
	ImageURL  string  `json:"imageUrl"`
	Active    bool    `json:"active"`
	SortOrder int     `json:"sortOrder"`
}

// ItemPatch carries a partial update; nil fields are left untouched.
// The item id itself is never patchable.
type ItemPatch struct {
	Name      *string  `json:"name"`
	NameAr    *string  `json:"nameAr"`
	Category  *string  `json:"category"`
	Price     *float64 `json:"price"`
	Unit      *string  `json:"unit"`
	ImageURL  *string  `json:"imageUrl"`
	Active    *bool    `json:"active"`
	SortOrder *int     `json:"sortOrder"`
}

// ValidCategory reports whether c is one of the known item categories.
func ValidCategory(c string) bool {
	return c == CategoryVegetable || c == CategoryFruit
}

// ValidUnit reports whether u is one of the known sale units.
func ValidUnit(u string) bool {
	return u == UnitKg || u == UnitPc || u == UnitBundle
}

// Package catalog holds the static, read-only menu of the storefront:
// categories and the drinks filed under them.
//
// A Catalog is loaded once at startup and never written afterwards, so it is
// safe for concurrent readers without locking.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

//go:embed menu.json
var embeddedMenu []byte

var (
	ErrDrinkNotFound    = errors.New("catalog: drink not found")
	ErrCategoryNotFound = errors.New("catalog: category not found")
)

// Category groups drinks on the menu. Identity is ID.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SizeOption is one size/price variant of a drink. Size is in ounces.
type SizeOption struct {
	Size  int     `json:"size"`
	Price float64 `json:"price"`
}

// Drink is a menu entry. Exactly one of Price or a non-empty Sizes is set.
type Drink struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Price       *float64     `json:"price,omitempty"`
	Sizes       []SizeOption `json:"sizes,omitempty"`
}

// HasSizes reports whether the drink is sold in size variants.
func (d Drink) HasSizes() bool {
	return len(d.Sizes) > 0
}

// Size returns the variant for the given size in ounces.
func (d Drink) Size(oz int) (SizeOption, bool) {
	for _, s := range d.Sizes {
		if s.Size == oz {
			return s, true
		}
	}
	return SizeOption{}, false
}

// hotCategories are the categories whose sized drinks default to 12 oz.
var hotCategories = map[string]bool{
	"Hot Coffee":     true,
	"Hot Non-Coffee": true,
}

// IsHotCategory reports whether categoryID is a hot beverage category.
func IsHotCategory(categoryID string) bool {
	return hotCategories[categoryID]
}

// document is the on-disk shape of the menu.
type document struct {
	Categories []Category `json:"categories"`
	Drinks     []Drink    `json:"drinks"`
}

type Catalog struct {
	categories []Category
	drinks     []Drink
	byCategory map[string]*Category
	byDrink    map[string]*Drink
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedMenu)
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and checks a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	c := &Catalog{
		categories: doc.Categories,
		drinks:     doc.Drinks,
		byCategory: make(map[string]*Category, len(doc.Categories)),
		byDrink:    make(map[string]*Drink, len(doc.Drinks)),
	}

	for i := range c.categories {
		cat := &c.categories[i]
		if cat.ID == "" {
			return nil, fmt.Errorf("catalog: category %d has no id", i)
		}
		if _, dup := c.byCategory[cat.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate category %q", cat.ID)
		}
		c.byCategory[cat.ID] = cat
	}

	for i := range c.drinks {
		d := &c.drinks[i]
		if err := c.checkDrink(d); err != nil {
			return nil, err
		}
		c.byDrink[d.ID] = d
	}

	return c, nil
}

func (c *Catalog) checkDrink(d *Drink) error {
	switch {
	case d.ID == "":
		return fmt.Errorf("catalog: drink %q has no id", d.Name)
	case c.byDrink[d.ID] != nil:
		return fmt.Errorf("catalog: duplicate drink %q", d.ID)
	case c.byCategory[d.Category] == nil:
		return fmt.Errorf("catalog: drink %q: %w: %q", d.ID, ErrCategoryNotFound, d.Category)
	case d.HasSizes() && d.Price != nil:
		return fmt.Errorf("catalog: drink %q has both a price and sizes", d.ID)
	case !d.HasSizes() && d.Price == nil:
		return fmt.Errorf("catalog: drink %q has neither a price nor sizes", d.ID)
	}
	return nil
}

// Categories returns the categories in document order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (Category, error) {
	cat, ok := c.byCategory[id]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, id)
	}
	return *cat, nil
}

// DefaultCategory is the first category, which views select when none is chosen.
func (c *Catalog) DefaultCategory() (Category, bool) {
	if len(c.categories) == 0 {
		return Category{}, false
	}
	return c.categories[0], true
}

// Drinks returns every drink in document order.
func (c *Catalog) Drinks() []Drink {
	out := make([]Drink, len(c.drinks))
	copy(out, c.drinks)
	return out
}

// DrinksIn returns the drinks filed under categoryID, in document order.
func (c *Catalog) DrinksIn(categoryID string) []Drink {
	var out []Drink
	for _, d := range c.drinks {
		if d.Category == categoryID {
			out = append(out, d)
		}
	}
	return out
}

// Drink looks up a drink by id.
func (c *Catalog) Drink(id string) (Drink, error) {
	d, ok := c.byDrink[id]
	if !ok {
		return Drink{}, fmt.Errorf("%w: %q", ErrDrinkNotFound, id)
	}
	return *d, nil
}

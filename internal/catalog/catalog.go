package catalog

import (
	"sort"
	"strings"
)

// Catalog serves the fixed product list.
type Catalog struct {
	products []Product
}

// Default returns the salon's product catalog.
func Default() *Catalog {
	return &Catalog{products: []Product{
		{ID: 1, Name: "Hydrating Shampoo", Brand: "Kerastase", Price: 28.99, Image: "/products/shampoo-1.jpg", Category: "shampoo", Bestseller: true, InStock: true},
		{ID: 2, Name: "Repair Conditioner", Brand: "Oribe", Price: 32.99, Image: "/products/conditioner-1.jpg", Category: "conditioner", IsNew: true, InStock: true},
		{ID: 3, Name: "Styling Pomade", Brand: "Aveda", Price: 24.99, SalePrice: 19.99, Image: "/products/styling-1.jpg", Category: "styling", InStock: true},
		{ID: 4, Name: "Hair Oil Treatment", Brand: "Moroccanoil", Price: 46.99, Image: "/products/treatment-1.jpg", Category: "treatment", Bestseller: true, InStock: true},
		{ID: 5, Name: "Volume Spray", Brand: "Kevin Murphy", Price: 29.99, Image: "/products/styling-2.jpg", Category: "styling", IsNew: true, InStock: true},
		{ID: 6, Name: "Curl Defining Cream", Brand: "DevaCurl", Price: 26.99, Image: "/products/styling-3.jpg", Category: "styling"},
		{ID: 7, Name: "Color Protection Shampoo", Brand: "Pureology", Price: 34.99, SalePrice: 29.99, Image: "/products/shampoo-2.jpg", Category: "shampoo", InStock: true},
		{ID: 8, Name: "Deep Repair Mask", Brand: "Redken", Price: 38.99, Image: "/products/treatment-2.jpg", Category: "treatment", Bestseller: true, InStock: true},
	}}
}

// All returns every product.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(id int) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Query narrows and orders the catalog.
type Query struct {
	Category string // "" or "all" match everything
	Search   string // case-insensitive match on name or brand
	Sort     string // one of the Sort* constants; default featured
}

// Search filters by category and search term, then sorts.
func (c *Catalog) Search(q Query) []Product {
	search := strings.ToLower(q.Search)
	var out []Product
	for _, p := range c.products {
		if q.Category != "" && q.Category != "all" && p.Category != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].IsNew && !out[j].IsNew
		})
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() < out[j].EffectivePrice()
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].EffectivePrice() > out[j].EffectivePrice()
		})
	default: // featured, bestsellers first
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Bestseller && !out[j].Bestseller
		})
	}
	return out
}

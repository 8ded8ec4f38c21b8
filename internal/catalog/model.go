package catalog

// Product is one entry of the static shop catalog, read-only at runtime.
type Product struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Brand      string  `json:"brand"`
	Price      float64 `json:"price"`
	SalePrice  float64 `json:"salePrice,omitempty"`
	Image      string  `json:"image"`
	Category   string  `json:"category"`
	Bestseller bool    `json:"bestseller"`
	IsNew      bool    `json:"isNew"`
	InStock    bool    `json:"inStock"`
}

// EffectivePrice is the sale price when present, the list price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}

// Category is a shop filter option.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SortOption is a shop ordering option.
type SortOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const (
	SortFeatured  = "featured"
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// Categories lists the fixed filter options shown in the shop.
func Categories() []Category {
	return []Category{
		{ID: "all", Name: "All Products"},
		{ID: "shampoo", Name: "Shampoo"},
		{ID: "conditioner", Name: "Conditioner"},
		{ID: "styling", Name: "Styling"},
		{ID: "treatment", Name: "Treatments"},
	}
}

// SortOptions lists the fixed ordering options shown in the shop.
func SortOptions() []SortOption {
	return []SortOption{
		{ID: SortFeatured, Name: "Featured"},
		{ID: SortNewest, Name: "Newest"},
		{ID: SortPriceLow, Name: "Price: Low to High"},
		{ID: SortPriceHigh, Name: "Price: High to Low"},
	}
}

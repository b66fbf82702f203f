package product

import "time"

type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	SalePrice    *int64    `json:"sale_price,omitempty"`
	SKU          string    `json:"sku"`
	Inventory    int       `json:"inventory"`
	IsPublished  bool      `json:"is_published"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	ScentNotes   []string  `json:"scent_notes"`
	SizeLabel    *string   `json:"size_label,omitempty"`
	Images       []string  `json:"images"`
	AvgRating    float64   `json:"avg_rating"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	SalePrice   *int64   `json:"sale_price"`
	SKU         string   `json:"sku"`
	Inventory   int      `json:"inventory"`
	IsPublished bool     `json:"is_published"`
	CategoryID  string   `json:"category_id"`
	ScentNotes  []string `json:"scent_notes"`
	SizeLabel   *string  `json:"size_label"`
	Images      []string `json:"images"`
}

type ListFilter struct {
	Search     string
	CategoryID string
	MinPrice   int64
	MaxPrice   int64
	ScentNotes []string
	InStock    bool
	// Unpublished products are only visible to the admin listing.
	IncludeUnpublished bool
}

type ListSort string

const (
	SortNewest    ListSort = "newest"
	SortPriceLow  ListSort = "price-low"
	SortPriceHigh ListSort = "price-high"
	SortName      ListSort = "name"
	SortRating    ListSort = "rating"
)

type ListResult struct {
	Products    []*Product `json:"products"`
	Total       int64      `json:"total"`
	TotalPages  int64      `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}

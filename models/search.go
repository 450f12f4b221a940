package models

import "math"

// Sort orders accepted by the offers search.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// SearchPageSize is the fixed number of listings returned per page.
const SearchPageSize = 5

// MaxSearchPage is the last page whose offset still fits an int.
const MaxSearchPage = math.MaxInt / SearchPageSize

// SearchFilter carries the optional search criteria. Nil bounds are not
// applied.
type SearchFilter struct {
	Title    string
	PriceMin *float64
	PriceMax *float64
	Sort     string
	Page     int
}

// Offset returns the number of rows to skip for the filter's page.
func (f SearchFilter) Offset() uint64 {
	if f.Page < 1 {
		return 0
	}
	page := uint64(f.Page)
	if page > MaxSearchPage {
		page = MaxSearchPage
	}
	return (page - 1) * SearchPageSize
}

// ListingSummary is a search result entry.
type ListingSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"product_name"`
	Price float64 `json:"product_price"`
	Owner *Owner  `json:"owner,omitempty"`
}

// SearchResult is the page of listings plus the total number of listings
// matching the filter regardless of pagination.
type SearchResult struct {
	Count  int64            `json:"count"`
	Offers []ListingSummary `json:"offers"`
}

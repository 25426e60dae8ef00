package models

import "time"

// Listing is a single property record from the static dataset.
// The catalog is read-only for the lifetime of the process, so
// listings are never mutated after load.
type Listing struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	State          string     `json:"state"`
	ZipCode        string     `json:"zip_code"`
	Price          int        `json:"price"`
	Bedrooms       int        `json:"bedrooms"`
	Bathrooms      float64    `json:"bathrooms"`
	SquareFeet     int        `json:"square_feet"`
	LotSize        int        `json:"lot_size"`
	YearBuilt      int        `json:"year_built"`
	PropertyType   string     `json:"property_type"`
	Status         string     `json:"status"`
	Images         []string   `json:"images"`
	Amenities      []string   `json:"amenities,omitempty"`
	Description    string     `json:"description"`
	ListedDate     *time.Time `json:"listed_date,omitempty"`
	VirtualTourURL string     `json:"virtual_tour_url,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
}

// FilterCriteria holds the active search constraints. A nil pointer or
// empty value means the dimension is unconstrained.
type FilterCriteria struct {
	SearchQuery   string   `form:"q" json:"search_query"`
	PriceMin      *int     `form:"price_min" json:"price_min,omitempty"`
	PriceMax      *int     `form:"price_max" json:"price_max,omitempty"`
	Bedrooms      *int     `form:"bedrooms" json:"bedrooms,omitempty"`
	Bathrooms     *float64 `form:"bathrooms" json:"bathrooms,omitempty"`
	PropertyTypes []string `form:"property_types" json:"property_types,omitempty"`
}

// ListingStats summarizes the loaded catalog.
type ListingStats struct {
	TotalListings   int            `json:"total_listings"`
	AveragePrice    float64        `json:"average_price"`
	MedianPrice     float64        `json:"median_price"`
	AvgPricePerSqft float64        `json:"avg_price_per_sqft"`
	CountByType     map[string]int `json:"count_by_type"`
	CountByStatus   map[string]int `json:"count_by_status"`
}

package model

import "time"

// Car is a rental unit. JSON field names follow the storefront's camelCase contract.
type Car struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Brand          string                 `json:"brand"`
	Model          string                 `json:"model"`
	Year           int                    `json:"year"`
	Category       string                 `json:"category"`
	PricePerDay    float64                `json:"pricePerDay"`
	PricePerWeek   *float64               `json:"pricePerWeek,omitempty"`
	PricePerMonth  *float64               `json:"pricePerMonth,omitempty"`
	Images         []string               `json:"images"`
	Features       []string               `json:"features"`
	Specifications map[string]interface{} `json:"specifications"`
	Available      bool                   `json:"available"`
	Availability   map[string]interface{} `json:"availability"`
	Rating         float64                `json:"rating"`
	ReviewCount    int                    `json:"reviewCount"`
	IsPopular      bool                   `json:"isPopular"`
	IsFeatured     bool                   `json:"isFeatured"`
	Description    *string                `json:"description,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// Summary returns the shallow projection embedded in inquiries and bookings.
func (c *Car) Summary() *CarSummary {
	return &CarSummary{ID: c.ID, Name: c.Name, Brand: c.Brand, Model: c.Model}
}

// CarSummary is the joined car projection returned with inquiries and bookings.
type CarSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// CarRequest is used for both create and update. Pointers distinguish "absent" from zero values.
type CarRequest struct {
	Name           *string                `json:"name"`
	Brand          *string                `json:"brand"`
	Model          *string                `json:"model"`
	Year           *int                   `json:"year"`
	Category       *string                `json:"category"`
	PricePerDay    *float64               `json:"pricePerDay"`
	PricePerWeek   *float64               `json:"pricePerWeek"`
	PricePerMonth  *float64               `json:"pricePerMonth"`
	Images         []string               `json:"images"`
	Features       []string               `json:"features"`
	Specifications map[string]interface{} `json:"specifications"`
	Available      *bool                  `json:"available"`
	Availability   map[string]interface{} `json:"availability"`
	IsPopular      *bool                  `json:"isPopular"`
	IsFeatured     *bool                  `json:"isFeatured"`
	Description    *string                `json:"description"`
}

// CarFilters contains the public catalogue filters
type CarFilters struct {
	Category  *string
	Brand     *string
	Available *bool
	MinPrice  *float64
	MaxPrice  *float64
	Featured  *bool
	Popular   *bool
}

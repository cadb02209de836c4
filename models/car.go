package models

import "time"

// Car is a vehicle in the fleet.
type Car struct {
	ID           string    `bson:"id" json:"id"`
	Brand        string    `bson:"brand" json:"brand" binding:"required"`
	Model        string    `bson:"model" json:"model" binding:"required"`
	Year         int       `bson:"year" json:"year"`
	Seats        int       `bson:"seats" json:"seats"`
	FuelType     string    `bson:"fuelType" json:"fuelType"`         // e.g. "petrol", "diesel", "electric", "hybrid"
	Transmission string    `bson:"transmission" json:"transmission"` // "automatic" or "manual"
	PricePerDay  float64   `bson:"pricePerDay" json:"pricePerDay" binding:"gte=0"`
	Available    bool      `bson:"available" json:"available"`
	Images       []string  `bson:"images" json:"images"`
	OwnerID      string    `bson:"ownerId" json:"ownerId"`
	Description  string    `bson:"description" json:"description"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CarFilter holds the browse-grid filters.
type CarFilter struct {
	Query    string  `form:"q"`
	FuelType string  `form:"fuelType"`
	Brand    string  `form:"brand"`
	MinSeats int     `form:"seats"`
	MinPrice float64 `form:"minPrice"`
	MaxPrice float64 `form:"maxPrice"`
	Sort     string  `form:"sort"` // "any", "low-to-high", "high-to-low"
}

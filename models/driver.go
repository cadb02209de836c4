package models

import "time"

// GeoLocation is a driver's last reported position.
type GeoLocation struct {
	Lat       float64   `bson:"lat" json:"lat" binding:"gte=-90,lte=90"`
	Lng       float64   `bson:"lng" json:"lng" binding:"gte=-180,lte=180"`
	Heading   float64   `bson:"heading,omitempty" json:"heading,omitempty"`
	Speed     float64   `bson:"speed,omitempty" json:"speed,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DriverLocation is the document stored under drivers/{id}.
type DriverLocation struct {
	DriverID        string      `bson:"id" json:"driverId"`
	CurrentLocation GeoLocation `bson:"currentLocation" json:"currentLocation"`
}

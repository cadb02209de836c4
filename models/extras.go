package models

// BookingExtra is an optional add-on from the static catalog.
type BookingExtra struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// ExtrasCatalog is the fixed list of add-ons a renter can pick from.
var ExtrasCatalog = []BookingExtra{
	{ID: "gps", Name: "GPS Navigation", Price: 5, Category: "navigation"},
	{ID: "babySeat", Name: "Baby Seat", Price: 10, Category: "safety"},
	{ID: "insurance", Name: "Additional Insurance", Price: 15, Category: "safety"},
	{ID: "roofRack", Name: "Roof Rack", Price: 8, Category: "convenience"},
	{ID: "wifi", Name: "WiFi Hotspot", Price: 3, Category: "convenience"},
}

// FindExtra looks an extra up by id.
func FindExtra(id string) (BookingExtra, bool) {
	for _, e := range ExtrasCatalog {
		if e.ID == id {
			return e, true
		}
	}
	return BookingExtra{}, false
}

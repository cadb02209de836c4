package models

// RecommendationInput is the renter's stated preferences.
type RecommendationInput struct {
	PriceRange string `json:"priceRange" validate:"required"` // in RWF
	CarType    string `json:"carType" validate:"required"`
	Features   string `json:"features" validate:"required"`
	Purpose    string `json:"purpose" validate:"required"`
	Location   string `json:"location" validate:"required"` // usually somewhere in Rwanda
}

// Recommendation is a single suggested rental.
type Recommendation struct {
	CarName          string  `json:"carName" validate:"required"`
	RentalCompany    string  `json:"rentalCompany" validate:"required"`
	Price            float64 `json:"price" validate:"gte=0"` // per day, RWF
	SuitabilityScore float64 `json:"suitabilityScore" validate:"gte=0,lte=1"`
	Reasoning        string  `json:"reasoning" validate:"required"`
}

// RecommendationOutput is the validated model reply.
type RecommendationOutput struct {
	Recommendations []Recommendation `json:"recommendations" validate:"min=1,dive"`
}

// CarImageInput describes the car to render.
type CarImageInput struct {
	CarName        string `json:"carName" validate:"required"`
	CarType        string `json:"carType" validate:"required"`
	CarDescription string `json:"carDescription"`
}

// CarImageOutput carries the generated image location.
type CarImageOutput struct {
	ImageURL string `json:"imageUrl" validate:"required"`
}

package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// BookingType describes what is being rented.
type BookingType string

const (
	BookingCarOnly       BookingType = "car-only"
	BookingCarWithDriver BookingType = "car-with-driver"
	BookingDriverOnly    BookingType = "driver-only"
)

// Valid reports whether t is one of the known booking types.
func (t BookingType) Valid() bool {
	switch t {
	case BookingCarOnly, BookingCarWithDriver, BookingDriverOnly:
		return true
	}
	return false
}

// IncludesDriver reports whether the booking hires a driver.
func (t BookingType) IncludesDriver() bool {
	return t == BookingCarWithDriver || t == BookingDriverOnly
}

// Booking is a reservation of a car (and optionally a driver) for a date range.
type Booking struct {
	ID                 string          `bson:"id" json:"id"`
	CustomerID         string          `bson:"customerId" json:"customerId"`
	CarID              string          `bson:"carId" json:"carId"`
	DriverID           string          `bson:"driverId,omitempty" json:"driverId,omitempty"`
	Status             BookingStatus   `bson:"status" json:"status"`
	BookingType        BookingType     `bson:"bookingType" json:"bookingType"`
	StartDate          time.Time       `bson:"startDate" json:"startDate"`
	EndDate            time.Time       `bson:"endDate" json:"endDate"`
	PickupLocation     string          `bson:"pickupLocation,omitempty" json:"pickupLocation,omitempty"`
	DropoffLocation    string          `bson:"dropoffLocation,omitempty" json:"dropoffLocation,omitempty"`
	PickupTime         string          `bson:"pickupTime,omitempty" json:"pickupTime,omitempty"`   // "HH:MM"
	DropoffTime        string          `bson:"dropoffTime,omitempty" json:"dropoffTime,omitempty"` // "HH:MM"
	Extras             []string        `bson:"extras" json:"extras"`                               // BookingExtra ids
	TotalPrice         float64         `bson:"totalPrice" json:"totalPrice"`
	Pricing            *PriceBreakdown `bson:"pricing,omitempty" json:"pricing,omitempty"`
	IsPaid             bool            `bson:"isPaid" json:"isPaid"`
	PaymentIntentID    string          `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	Issues             []BookingIssue  `bson:"issues" json:"issues"`
	HasIssue           bool            `bson:"hasIssue" json:"hasIssue"`
	CancellationReason string          `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time      `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy        Role            `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CreatedAt          time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// BookingIssue is a problem reported against a booking by its renter or driver.
type BookingIssue struct {
	ReportedAt  time.Time `bson:"reportedAt" json:"reportedAt"`
	Description string    `bson:"description" json:"description"`
	ReportedBy  string    `bson:"reportedBy" json:"reportedBy"`
}

// PriceBreakdown is the itemised result of a pricing computation.
type PriceBreakdown struct {
	Days        int     `bson:"days" json:"days"`
	DailyRate   float64 `bson:"dailyRate" json:"dailyRate"`
	Base        float64 `bson:"base" json:"base"`
	ExtrasTotal float64 `bson:"extrasTotal" json:"extrasTotal"`
	Subtotal    float64 `bson:"subtotal" json:"subtotal"`
	TaxRate     float64 `bson:"taxRate" json:"taxRate"`
	Tax         float64 `bson:"tax" json:"tax"`
	Total       float64 `bson:"total" json:"total"`
}

// BookingRequest is the renter's input for creating or quoting a booking.
type BookingRequest struct {
	CarID           string      `json:"carId"`
	DriverID        string      `json:"driverId,omitempty"`
	BookingType     BookingType `json:"bookingType" binding:"required"`
	StartDate       string      `json:"startDate" binding:"required"`
	EndDate         string      `json:"endDate" binding:"required"`
	PickupLocation  string      `json:"pickupLocation"`
	DropoffLocation string      `json:"dropoffLocation"`
	PickupTime      string      `json:"pickupTime"`
	DropoffTime     string      `json:"dropoffTime"`
	Extras          []string    `json:"extras"`
}

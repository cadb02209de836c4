package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// User endpoints
	RegisterUserHandler   gin.HandlerFunc
	LoginUserHandler      gin.HandlerFunc
	GetMeHandler          gin.HandlerFunc
	UpdateFCMTokenHandler gin.HandlerFunc

	// Car endpoints
	ListCarsHandler        gin.HandlerFunc
	CarBrandsHandler       gin.HandlerFunc
	GetCarHandler          gin.HandlerFunc
	CarImageHandler        gin.HandlerFunc
	CreateCarHandler       gin.HandlerFunc
	UpdateCarHandler       gin.HandlerFunc
	SetAvailabilityHandler gin.HandlerFunc
	UploadCarImageHandler  gin.HandlerFunc
	ExtrasHandler          gin.HandlerFunc

	// Booking endpoints
	QuoteHandler          gin.HandlerFunc
	CreateBookingHandler  gin.HandlerFunc
	ListMyBookingsHandler gin.HandlerFunc
	ListBookingsHandler   gin.HandlerFunc
	DashboardHandler      gin.HandlerFunc
	GetBookingHandler     gin.HandlerFunc
	CancelBookingHandler  gin.HandlerFunc
	UpdateStatusHandler   gin.HandlerFunc
	ReportIssueHandler    gin.HandlerFunc

	// Payment endpoints
	CreatePaymentIntentHandler gin.HandlerFunc
	ConfirmPaymentHandler      gin.HandlerFunc

	// AI endpoints
	AIRecommendHandler gin.HandlerFunc
	AICarImageHandler  gin.HandlerFunc

	// Driver endpoints
	UpdateDriverLocationHandler gin.HandlerFunc
	GetDriverLocationHandler    gin.HandlerFunc

	SendNotificationHandler gin.HandlerFunc
	HealthHandler           gin.HandlerFunc
}

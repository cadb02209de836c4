package routes

import (
	"time"

	"carrental/handlers"
	"carrental/middleware"
	"carrental/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.LoginUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.GetMeHandler)
		api.PUT("/me/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterCarRoutes registers the catalog. Browsing is public; fleet changes are manager only.
func RegisterCarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cars")
	{
		api.GET("", hb.ListCarsHandler)
		api.GET("/brands", hb.CarBrandsHandler)
		api.GET("/:id", hb.GetCarHandler)
		api.GET("/:id/image", hb.CarImageHandler)

		managed := api.Group("")
		managed.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles(models.RoleManager))
		managed.POST("", hb.CreateCarHandler)
		managed.PUT("/:id", hb.UpdateCarHandler)
		managed.PATCH("/:id/availability", hb.SetAvailabilityHandler)
		managed.POST("/:id/images", hb.UploadCarImageHandler)
	}
	r.GET("/api/extras", hb.ExtrasHandler)
}

// RegisterBookingRoutes sets up the booking and payment endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/bookings")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("/quote", hb.QuoteHandler)
		bookingGroup.POST("", middleware.RequireRoles(models.RoleRenter), hb.CreateBookingHandler)
		bookingGroup.GET("/mine", hb.ListMyBookingsHandler)
		bookingGroup.GET("/dashboard", hb.DashboardHandler)
		bookingGroup.GET("", middleware.RequireRoles(models.RoleManager), hb.ListBookingsHandler)

		bookingGroup.GET("/:id", hb.GetBookingHandler)
		bookingGroup.POST("/:id/cancel", hb.CancelBookingHandler)
		bookingGroup.POST("/:id/issues", hb.ReportIssueHandler)
		bookingGroup.PATCH("/:id/status", middleware.RequireRoles(models.RoleManager), hb.UpdateStatusHandler)

		bookingGroup.POST("/:id/payment-intent", middleware.RequireRoles(models.RoleRenter), hb.CreatePaymentIntentHandler)
		bookingGroup.POST("/:id/payment-confirm", middleware.RequireRoles(models.RoleRenter), hb.ConfirmPaymentHandler)
	}
}

// RegisterAIRoutes registers AI endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/recommendations", hb.AIRecommendHandler)
		api.POST("/car-image", hb.AICarImageHandler)
	}
}

func RegisterDriverRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/drivers")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.PUT("/me/location", middleware.RequireRoles(models.RoleDriver), hb.UpdateDriverLocationHandler)
		api.GET("/:id/location", hb.GetDriverLocationHandler)
	}
}

func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRoles(models.RoleManager))
		api.POST("", hb.SendNotificationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterCarRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterDriverRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carrental/config"
	"carrental/cron"
	"carrental/database"
	bookingRepo "carrental/database/repository/booking"
	carRepo "carrental/database/repository/car"
	driverRepo "carrental/database/repository/driver"
	notificationRepo "carrental/database/repository/notification"
	userRepoPkg "carrental/database/repository/user"
	"carrental/handlers"
	"carrental/middleware"
	"carrental/routes"
	"carrental/services/booking"
	"carrental/services/car"
	"carrental/services/driver"
	ai "carrental/services/intelligence"
	"carrental/services/notification"
	"carrental/services/payment"
	"carrental/services/storage"
	"carrental/services/tasks"
	"carrental/services/user"
	"carrental/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	database.InitDB()
	cacheClient := utils.GetCacheClient()
	utils.FirebaseInit()
	stripe.Key = cfg.StripeKey

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	utils.StartHealthMonitor(rootCtx, []*redis.Client{cacheClient}, database.MongoClient)

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	cars := carRepo.NewMongoCarRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	drivers := driverRepo.NewMongoDriverRepo()
	notifications := notificationRepo.NewMongoNotificationRepo(logger)

	// background queue.
	queue := asynq.NewClient(utils.QueueRedisOpt())
	taskClient := tasks.NewClient(queue, logger)

	// notifications.
	var push notification.PushSender
	if utils.FCMClient != nil {
		push = notification.NewFCMSender(utils.FCMClient)
	}
	dispatcher := notification.NewDispatcher(
		notifications,
		userRepo,
		notification.NewSendGridSender(cfg.SendGridAPIKey, cfg.SendGridFrom),
		notification.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom),
		push,
		logger,
	)
	notificationService := notification.NewDefaultNotificationService(notifications, taskClient, cfg.NotificationTrigger, logger)

	// media and AI.
	var store storage.StorageService
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Warn("main: cloudinary disabled", zap.Error(err))
	} else {
		store = storage.NewCloudinaryStorage(cld, logger)
	}

	jsonCache := utils.NewJSONCache(cacheClient)
	var generator ai.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(rootCtx, cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)
		if err != nil {
			logger.Warn("main: gemini disabled", zap.Error(err))
		} else {
			defer gemini.Close()
			generator = gemini
		}
	}
	aiService := ai.NewDefaultAIService(generator, jsonCache, store, logger)

	// domain services.
	bookingService := booking.NewDefaultBookingService(bookings, cars, notificationService, taskClient, booking.Settings{
		TaxRate:         cfg.TaxRate,
		ExtrasMode:      booking.ExtrasMode(cfg.ExtrasMode),
		DriverDailyRate: cfg.DriverDailyRate,
		ReminderLead:    time.Duration(cfg.ReminderLeadHours) * time.Hour,
		ManagerEmail:    cfg.ManagerNotifyEmail,
	}, logger)
	carService := car.NewDefaultCarService(cars, jsonCache, store, aiService, cfg.PlaceholderImageURL, logger)
	userService := user.NewDefaultUserService(userRepo, cfg.AllowManagerSignup, logger)
	driverService := driver.NewDefaultDriverService(drivers, bookings, logger)
	paymentService := payment.NewStripePaymentService(payment.StripeIntents{}, bookingService, cfg.Currency, cfg.StripeKey != "", logger)

	// worker.
	worker := cron.NewWorker(utils.QueueRedisOpt(), &cron.Handlers{
		Dispatcher:    dispatcher,
		Bookings:      bookings,
		Notifications: notificationService,
		Logger:        logger,
	})
	worker.Start()

	if cfg.NotificationTrigger == notification.TriggerChangeStream {
		go func() {
			if err := notificationService.Watch(rootCtx); err != nil && rootCtx.Err() == nil {
				logger.Error("main: notification watcher stopped", zap.Error(err))
			}
		}()
	}

	// handlers.
	userHandler := handlers.NewUserHandler(userService)
	carHandler := handlers.NewCarHandler(carService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	aiHandler := handlers.NewAIHandler(aiService)
	driverHandler := handlers.NewDriverHandler(driverService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	handlerBundle := &handlers.HandlerBundle{
		RegisterUserHandler:   userHandler.RegisterHandler,
		LoginUserHandler:      userHandler.LoginHandler,
		GetMeHandler:          userHandler.GetMeHandler,
		UpdateFCMTokenHandler: userHandler.UpdateFCMTokenHandler,

		ListCarsHandler:        carHandler.ListCarsHandler,
		CarBrandsHandler:       carHandler.BrandsHandler,
		GetCarHandler:          carHandler.GetCarHandler,
		CarImageHandler:        carHandler.CarImageHandler,
		CreateCarHandler:       carHandler.CreateCarHandler,
		UpdateCarHandler:       carHandler.UpdateCarHandler,
		SetAvailabilityHandler: carHandler.SetAvailabilityHandler,
		UploadCarImageHandler:  carHandler.UploadImageHandler,
		ExtrasHandler:          handlers.ExtrasHandler,

		QuoteHandler:          bookingHandler.QuoteHandler,
		CreateBookingHandler:  bookingHandler.CreateBookingHandler,
		ListMyBookingsHandler: bookingHandler.ListMineHandler,
		ListBookingsHandler:   bookingHandler.ListAllHandler,
		DashboardHandler:      bookingHandler.DashboardHandler,
		GetBookingHandler:     bookingHandler.GetBookingHandler,
		CancelBookingHandler:  bookingHandler.CancelBookingHandler,
		UpdateStatusHandler:   bookingHandler.UpdateStatusHandler,
		ReportIssueHandler:    bookingHandler.ReportIssueHandler,

		CreatePaymentIntentHandler: paymentHandler.CreateIntentHandler,
		ConfirmPaymentHandler:      paymentHandler.ConfirmHandler,

		AIRecommendHandler: aiHandler.RecommendHandler,
		AICarImageHandler:  aiHandler.CarImageHandler,

		UpdateDriverLocationHandler: driverHandler.UpdateLocationHandler,
		GetDriverLocationHandler:    driverHandler.GetLocationHandler,

		SendNotificationHandler: notificationHandler.SendHandler,
		HealthHandler:           handlers.HealthHandler,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	stopBackground()
	worker.Shutdown()
	if err := queue.Close(); err != nil {
		logger.Warn("main: failed to close task client", zap.Error(err))
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}
	logger.Sugar().Info("main: server stopped gracefully")
	_ = logger.Sync()
}

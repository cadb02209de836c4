package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Pricing.
	TaxRate         float64 `mapstructure:"TAX_RATE"`
	ExtrasMode      string  `mapstructure:"EXTRAS_MODE"` // "flat" or "per-day"
	DriverDailyRate float64 `mapstructure:"DRIVER_DAILY_RATE"`
	Currency        string  `mapstructure:"CURRENCY"`

	// Email (SendGrid) and SMS (Twilio).
	SendGridAPIKey   string `mapstructure:"SENDGRID_API_KEY"`
	SendGridFrom     string `mapstructure:"SENDGRID_FROM"`
	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFrom       string `mapstructure:"TWILIO_FROM"`

	// Notification trigger: "direct" enqueues on insert, "changestream" watches the collection.
	NotificationTrigger string `mapstructure:"NOTIFICATION_TRIGGER"`
	ReminderLeadHours   int    `mapstructure:"REMINDER_LEAD_HOURS"`

	// Firebase service account for push notifications. Empty disables push.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Gemini.
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	GeminiTextModel  string `mapstructure:"GEMINI_TEXT_MODEL"`
	GeminiImageModel string `mapstructure:"GEMINI_IMAGE_MODEL"`

	// Cloudinary.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	PlaceholderImageURL string `mapstructure:"PLACEHOLDER_IMAGE_URL"`

	// Stripe.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	AllowManagerSignup bool   `mapstructure:"ALLOW_MANAGER_SIGNUP"`
	ManagerNotifyEmail string `mapstructure:"MANAGER_NOTIFY_EMAIL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Environment variables override the file.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "carrental")
	viper.SetDefault("JWT_SECRET", "")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)

	viper.SetDefault("TAX_RATE", 0.18)
	viper.SetDefault("EXTRAS_MODE", "flat")
	viper.SetDefault("DRIVER_DAILY_RATE", 50)
	viper.SetDefault("CURRENCY", "rwf")

	// Provider secrets default to empty so AutomaticEnv can still bind them during Unmarshal.
	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("SENDGRID_FROM", "no-reply@example.com")
	viper.SetDefault("TWILIO_ACCOUNT_SID", "")
	viper.SetDefault("TWILIO_AUTH_TOKEN", "")
	viper.SetDefault("TWILIO_FROM", "")

	viper.SetDefault("NOTIFICATION_TRIGGER", "direct")
	viper.SetDefault("REMINDER_LEAD_HOURS", 24)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_TEXT_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_IMAGE_MODEL", "gemini-2.0-flash-preview-image-generation")

	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("PLACEHOLDER_IMAGE_URL", "/classic-red-convertible.png")

	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("ALLOW_MANAGER_SIGNUP", false)
	viper.SetDefault("MANAGER_NOTIFY_EMAIL", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		viper.Reset()
		LoadConfig()

		assert.Equal(t, "8080", AppConfig.AppPort)
		assert.Equal(t, 0.18, AppConfig.TaxRate)
		assert.Equal(t, "flat", AppConfig.ExtrasMode)
		assert.Equal(t, "no-reply@example.com", AppConfig.SendGridFrom)
		assert.Equal(t, "direct", AppConfig.NotificationTrigger)
		assert.False(t, IsProduction())
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TWILIO_FROM", "+250700000000")
		t.Setenv("ENV", "production")
		t.Setenv("MANAGER_NOTIFY_EMAIL", "fleet@example.com")
		viper.Reset()
		LoadConfig()

		assert.Equal(t, "+250700000000", AppConfig.TwilioFrom)
		assert.Equal(t, "fleet@example.com", AppConfig.ManagerNotifyEmail)
		assert.True(t, IsProduction())
	})
}

// utils/firebase.go
package utils

import (
	"context"

	"carrental/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client.
// Push stays disabled when no credentials file is configured.
func FirebaseInit() {
	logger := GetLogger()
	if config.AppConfig.FirebaseCredentialsFile == "" {
		logger.Info("firebase: no credentials configured, push notifications disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		logger.Error("firebase: error initializing app", zap.Error(err))
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		logger.Error("firebase: error getting Messaging client", zap.Error(err))
		return
	}

	FCMClient = client
}

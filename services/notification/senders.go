package notification

import (
	"context"
	"fmt"

	"carrental/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Details reported when a provider has no credentials.
const (
	SendGridNotConfigured = "sendgrid-not-configured"
	TwilioNotConfigured   = "twilio-not-configured"
)

// EmailSender delivers a plain-text email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, text string) (*models.DeliveryResult, error)
}

// SMSSender delivers a text message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) (*models.DeliveryResult, error)
}

// SendGridSender sends mail through the SendGrid v3 API.
type SendGridSender struct {
	APIKey string
	From   string
	send   func(msg *mail.SGMailV3) (status int, body string, err error)
}

// NewSendGridSender returns a sender for apiKey. An empty key yields a sender that reports sendgrid-not-configured.
func NewSendGridSender(apiKey, from string) *SendGridSender {
	s := &SendGridSender{APIKey: apiKey, From: from}
	if s.From == "" {
		s.From = "no-reply@example.com"
	}
	s.send = func(msg *mail.SGMailV3) (int, string, error) {
		response, err := sendgrid.NewSendClient(s.APIKey).Send(msg)
		if err != nil {
			return 0, "", err
		}
		return response.StatusCode, response.Body, nil
	}
	return s
}

func (s *SendGridSender) SendEmail(ctx context.Context, to, subject, text string) (*models.DeliveryResult, error) {
	if s.APIKey == "" {
		return &models.DeliveryResult{Success: false, Details: SendGridNotConfigured}, nil
	}

	message := mail.NewSingleEmailPlainText(mail.NewEmail("", s.From), subject, mail.NewEmail("", to), text)
	status, body, err := s.send(message)
	if err != nil {
		return nil, fmt.Errorf("sendgrid send failed: %w", err)
	}
	if status < 200 || status >= 300 {
		return &models.DeliveryResult{Success: false, Details: body}, nil
	}
	return &models.DeliveryResult{Success: true}, nil
}

// TwilioSender sends SMS through the Twilio Messages API.
type TwilioSender struct {
	AccountSID string
	AuthToken  string
	From       string
	create     func(params *openapi.CreateMessageParams) error
}

// NewTwilioSender returns a sender for the given account. Missing credentials yield twilio-not-configured.
func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	s := &TwilioSender{AccountSID: accountSID, AuthToken: authToken, From: from}
	s.create = func(params *openapi.CreateMessageParams) error {
		client := twilio.NewRestClientWithParams(twilio.ClientParams{
			Username:   s.AccountSID,
			Password:   s.AuthToken,
			AccountSid: s.AccountSID,
		})
		_, err := client.Api.CreateMessage(params)
		return err
	}
	return s
}

func (s *TwilioSender) configured() bool {
	return s.AccountSID != "" && s.AuthToken != "" && s.From != ""
}

func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) (*models.DeliveryResult, error) {
	if !s.configured() {
		return &models.DeliveryResult{Success: false, Details: TwilioNotConfigured}, nil
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.From)
	params.SetBody(body)

	if err := s.create(params); err != nil {
		return &models.DeliveryResult{Success: false, Details: err.Error()}, nil
	}
	return &models.DeliveryResult{Success: true}, nil
}

package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/environment"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

// TwilioAPI is the part of the Twilio REST client the SMS sender uses.
type TwilioAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender delivers notifications as text messages. In development it only logs.
type SMSSender struct {
	cfg    SMSConfig
	env    environment.Environment
	client TwilioAPI
	logger *slog.Logger
}

// SMSOption configures an SMSSender.
type SMSOption func(*SMSSender)

// WithTwilioClient replaces the Twilio client built from the config.
func WithTwilioClient(client TwilioAPI) SMSOption {
	return func(s *SMSSender) {
		s.client = client
	}
}

// WithSMSLogger sets the logger for the sender.
func WithSMSLogger(l *slog.Logger) SMSOption {
	return func(s *SMSSender) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSMSSender creates the SMS channel. Outside development the Twilio
// credentials and a sender number are required.
func NewSMSSender(cfg SMSConfig, env environment.Environment, opts ...SMSOption) (*SMSSender, error) {
	s := &SMSSender{
		cfg:    cfg,
		env:    env,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if env.IsDevelopment() {
		return s, nil
	}

	if cfg.FromNumber == "" {
		return nil, fmt.Errorf("%w: TWILIO_PHONE_NUMBER is required in %s", ErrInvalidConfig, env)
	}
	if s.client == nil {
		if cfg.AccountSID == "" || cfg.AuthToken == "" {
			return nil, fmt.Errorf("%w: twilio account sid and auth token are required in %s", ErrInvalidConfig, env)
		}
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}).Api
	}

	return s, nil
}

// Send implements Sender. A user without a phone number fails in every mode.
func (s *SMSSender) Send(ctx context.Context, user *notify.User, n *notify.Notification) Outcome {
	if user.Phone == "" {
		return Failed(ErrMissingPhone)
	}

	if s.env.IsDevelopment() {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "sms not sent in development mode",
			logger.NotificationID(n.ID),
			slog.String("to", user.Phone),
		)
		return Delivered("logged in development mode")
	}

	// The Twilio client takes no context.
	if err := ctx.Err(); err != nil {
		return Failed(errors.Join(notify.ErrTransport, err))
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(user.Phone)
	params.SetFrom(s.cfg.FromNumber)
	params.SetBody(n.Content)

	msg, err := s.client.CreateMessage(params)
	if err != nil {
		return Failed(errors.Join(notify.ErrTransport, err))
	}

	detail := "twilio message accepted"
	if msg != nil && msg.Sid != nil {
		detail = "twilio message " + *msg.Sid
	}
	return Delivered(detail)
}

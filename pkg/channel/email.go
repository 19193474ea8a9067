package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcnijman/go-emailaddress"
	"github.com/mrz1836/postmark"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/environment"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

// PostmarkAPI is the part of *postmark.Client the email sender uses.
type PostmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// EmailSender delivers notifications by email. In development it only logs.
type EmailSender struct {
	cfg    EmailConfig
	env    environment.Environment
	client PostmarkAPI
	logger *slog.Logger
}

// EmailOption configures an EmailSender.
type EmailOption func(*EmailSender)

// WithPostmarkClient replaces the Postmark client built from the config.
func WithPostmarkClient(client PostmarkAPI) EmailOption {
	return func(s *EmailSender) {
		s.client = client
	}
}

// WithEmailLogger sets the logger for the sender.
func WithEmailLogger(l *slog.Logger) EmailOption {
	return func(s *EmailSender) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewEmailSender creates the email channel. Outside development the Postmark
// tokens and a valid sender address are required.
func NewEmailSender(cfg EmailConfig, env environment.Environment, opts ...EmailOption) (*EmailSender, error) {
	s := &EmailSender{
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

	if err := validateAddress(cfg.SenderEmail); err != nil {
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("sender email %q: %w", cfg.SenderEmail, err))
	}
	if cfg.SupportEmail != "" {
		if err := validateAddress(cfg.SupportEmail); err != nil {
			return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("support email %q: %w", cfg.SupportEmail, err))
		}
	}

	if s.client == nil {
		if cfg.PostmarkServerToken == "" || cfg.PostmarkAccountToken == "" {
			return nil, fmt.Errorf("%w: postmark server and account tokens are required in %s", ErrInvalidConfig, env)
		}
		s.client = postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	}

	return s, nil
}

// Send implements Sender.
func (s *EmailSender) Send(ctx context.Context, user *notify.User, n *notify.Notification) Outcome {
	if user.Email == "" {
		return Failed(ErrMissingEmail)
	}
	if err := validateAddress(user.Email); err != nil {
		return Failed(fmt.Errorf("%w %q: %w", ErrInvalidEmail, user.Email, err))
	}

	if s.env.IsDevelopment() {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "email not sent in development mode",
			logger.NotificationID(n.ID),
			slog.String("to", user.Email),
			slog.String("subject", n.Title),
		)
		return Delivered("logged in development mode")
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.cfg.SenderEmail,
		ReplyTo:    s.cfg.SupportEmail,
		To:         user.Email,
		Subject:    n.Title,
		TextBody:   n.Content,
		Tag:        s.cfg.Tag,
		TrackOpens: true,
	})
	if err != nil {
		return Failed(errors.Join(notify.ErrTransport, err))
	}
	if resp.ErrorCode > 0 {
		return Failed(errors.Join(notify.ErrTransport,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message)))
	}

	return Delivered("postmark message " + resp.MessageID)
}

// validateAddress checks address syntax. emailaddress.Parse accepts an empty
// domain ("a@"), so both parts are required here.
func validateAddress(address string) error {
	addr, err := emailaddress.Parse(address)
	if err != nil {
		return err
	}
	if addr.LocalPart == "" || addr.Domain == "" {
		return errors.New("address needs a local part and a domain")
	}
	return nil
}

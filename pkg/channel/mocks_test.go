package channel_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/mock"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/channel"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
)

type MockPostmark struct {
	mock.Mock
}

func (m *MockPostmark) SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(postmark.EmailResponse), args.Error(1)
}

type MockTwilio struct {
	mock.Mock
}

func (m *MockTwilio) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*twilioApi.ApiV2010Message), args.Error(1)
}

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) HasDelivered(ctx context.Context, n *notify.Notification, since time.Time) (bool, error) {
	args := m.Called(ctx, n, since)
	return args.Bool(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, n *notify.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func staticSender(out channel.Outcome) channel.Sender {
	return channel.SenderFunc(func(context.Context, *notify.User, *notify.Notification) channel.Outcome {
		return out
	})
}

package channel

import "time"

// Config holds the settings shared by all channels.
type Config struct {
	SendTimeout time.Duration `env:"CHANNEL_SEND_TIMEOUT" envDefault:"10s"`
	Breaker     BreakerConfig
}

// EmailConfig holds Postmark settings. Tokens are only required outside development.
type EmailConfig struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"notifications@notifyhub.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL"`
	Tag                  string `env:"EMAIL_TAG" envDefault:"notification"`
}

// SMSConfig holds Twilio settings. Credentials are only required outside development.
type SMSConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `env:"TWILIO_PHONE_NUMBER"`
}

// BreakerConfig tunes the per-channel circuit breaker.
type BreakerConfig struct {
	MaxRequests      uint32        `env:"CHANNEL_BREAKER_MAX_REQUESTS" envDefault:"3"`
	Interval         time.Duration `env:"CHANNEL_BREAKER_INTERVAL" envDefault:"10s"`
	Timeout          time.Duration `env:"CHANNEL_BREAKER_TIMEOUT" envDefault:"1m"`
	FailureThreshold uint32        `env:"CHANNEL_BREAKER_FAILURES" envDefault:"3"`
}

// InAppConfig holds realtime fan-out settings for in-app notifications.
type InAppConfig struct {
	ChannelPrefix string `env:"INAPP_CHANNEL_PREFIX" envDefault:"notifications"`
}

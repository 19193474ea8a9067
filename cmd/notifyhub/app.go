package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/channel"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/config"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/environment"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/health"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/pg"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/processor"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/queue"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/redis"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/sqlstore"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/trigger"
)

type appConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"notifyhub"`

	Log       logger.Config
	Postgres  pg.Config
	Redis     redis.Config
	Queue     queue.Config
	Processor processor.Config
	Channel   channel.Config
	Email     channel.EmailConfig
	SMS       channel.SMSConfig
	InApp     channel.InAppConfig
	Trigger   trigger.Config
	Health    health.Config
}

// app holds the connections shared by every command.
type app struct {
	cfg   appConfig
	env   environment.Environment
	log   *slog.Logger
	pool  *pgxpool.Pool
	db    *sql.DB
	store *sqlstore.Store
	queue *queue.Queue
	redis *goredis.Client
	amqp  *amqp.Connection
}

func loadConfig(values *commandLineOptionValues) (appConfig, error) {
	if values.EnvFile != "" {
		if err := config.LoadEnv(values.EnvFile); err != nil {
			return appConfig{}, err
		}
	}

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, err
	}
	if values.Concurrency > 0 {
		cfg.Processor.Concurrency = values.Concurrency
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg appConfig) (*app, error) {
	env := environment.Parse(cfg.Environment)
	logOpts, err := cfg.Log.Options()
	if err != nil {
		return nil, err
	}
	log := logger.New(append([]logger.Option{
		logger.WithEnvironment(cfg.Environment, cfg.ServiceName),
		logger.WithContextExtractors(environment.LogAttr),
	}, logOpts...)...)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	db := pg.OpenDB(pool)
	store := sqlstore.New(db)

	q, err := queue.New(store,
		queue.WithMaxRetries(cfg.Queue.MaxRetries),
		queue.WithNotificationLookup(store),
		queue.WithLogger(log.With(logger.Component("queue"))))
	if err != nil {
		pool.Close()
		return nil, err
	}

	a := &app{
		cfg:   cfg,
		env:   env,
		log:   log,
		pool:  pool,
		db:    db,
		store: store,
		queue: q,
	}

	if cfg.Redis.Enabled() {
		if a.redis, err = redis.Connect(ctx, cfg.Redis); err != nil {
			a.close()
			return nil, err
		}
	}
	if cfg.Trigger.Enabled() {
		if a.amqp, err = trigger.Connect(ctx, cfg.Trigger); err != nil {
			a.close()
			return nil, err
		}
	}

	return a, nil
}

func (a *app) close() {
	if a.amqp != nil {
		_ = a.amqp.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	_ = a.db.Close()
	a.pool.Close()
}

// sender builds the channel dispatch table. Each channel gets a send timeout
// and its own circuit breaker.
func (a *app) sender() (channel.Sender, error) {
	email, err := channel.NewEmailSender(a.cfg.Email, a.env,
		channel.WithEmailLogger(a.log.With(logger.Channel("email"))))
	if err != nil {
		return nil, err
	}

	sms, err := channel.NewSMSSender(a.cfg.SMS, a.env,
		channel.WithSMSLogger(a.log.With(logger.Channel("sms"))))
	if err != nil {
		return nil, err
	}

	inAppOpts := []channel.InAppOption{channel.WithInAppLogger(a.log.With(logger.Channel("in_app")))}
	if a.redis != nil {
		inAppOpts = append(inAppOpts, channel.WithPublisher(channel.NewRedisPublisher(a.redis, a.cfg.InApp.ChannelPrefix)))
	}
	inApp := channel.NewInAppSender(a.store, inAppOpts...)

	guard := func(name string, s channel.Sender) channel.Sender {
		return channel.WithBreaker(channel.WithTimeout(s, a.cfg.Channel.SendTimeout), channel.NewBreaker(name, a.cfg.Channel.Breaker))
	}

	return channel.NewRegistry().
		Register(notify.TypeEmail, guard("email", email)).
		Register(notify.TypeSMS, guard("sms", sms)).
		Register(notify.TypeInApp, guard("in_app", inApp)), nil
}

func (a *app) processor() (*processor.Processor, error) {
	sender, err := a.sender()
	if err != nil {
		return nil, err
	}
	return processor.New(a.queue, a.store, a.store, a.store, sender,
		processor.WithLogger(a.log.With(logger.Component("processor"))))
}

// janitor builds the maintenance runner. The worker command passes
// WithJanitorWaker so reaped items are retried without waiting for a poll.
func (a *app) janitor(opts ...processor.JanitorOption) (*processor.Janitor, error) {
	return processor.NewJanitor(a.queue, a.store, append([]processor.JanitorOption{
		processor.WithRetention(a.cfg.Queue.Retention),
		processor.WithLeaseTTL(a.cfg.Queue.LeaseTTL),
		processor.WithSweepSchedule(processor.DailyAt(a.cfg.Processor.SweepHour, 0)),
		processor.WithReapSchedule(processor.EveryInterval(a.cfg.Processor.ReapInterval)),
		processor.WithCheckInterval(a.cfg.Processor.CheckInterval),
		processor.WithJanitorLogger(a.log.With(logger.Component("janitor"))),
	}, opts...)...)
}

func (a *app) checks() []health.Check {
	checks := []health.Check{{Name: "postgres", Fn: pg.Healthcheck(a.pool)}}
	if a.redis != nil {
		checks = append(checks, health.Check{Name: "redis", Fn: redis.Healthcheck(a.redis)})
	}
	if a.amqp != nil {
		checks = append(checks, health.Check{Name: "amqp", Fn: func(context.Context) error {
			if a.amqp.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}})
	}
	return checks
}

// triggerChannel opens an AMQP channel, or returns nil when no broker is configured.
func (a *app) triggerChannel() (*amqp.Channel, error) {
	if a.amqp == nil {
		return nil, nil
	}
	ch, err := a.amqp.Channel()
	if err != nil {
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	return ch, nil
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}

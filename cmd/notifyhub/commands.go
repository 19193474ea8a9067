package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dhruvv028/Notifyhub-notification-service/pkg/environment"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/health"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/logger"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/notify"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/pg"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/processor"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/sqlstore"
	"github.com/dhruvv028/Notifyhub-notification-service/pkg/trigger"
)

var errUnknownCommand = errors.New("unknown command")

func run(ctx context.Context, values *commandLineOptionValues, command string) error {
	cfg, err := loadConfig(values)
	if err != nil {
		return err
	}

	ctx = environment.WithContext(ctx, environment.Parse(cfg.Environment))

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	switch command {
	case "worker":
		return a.runWorker(ctx)
	case "drain":
		return a.runDrain(ctx)
	case "sweep":
		return a.runSweep(ctx)
	case "reap":
		return a.runReap(ctx)
	case "migrate":
		return pg.Migrate(ctx, a.db, sqlstore.Migrations, sqlstore.MigrationsDir, cfg.Postgres, a.log)
	case "send":
		return a.runSend(ctx, values)
	case "health":
		return a.runHealth(ctx)
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, command)
	}
}

// runWorker runs the dispatch loop, the maintenance janitor, the probe server
// and, when a broker is configured, the AMQP trigger consumer until ctx ends.
func (a *app) runWorker(ctx context.Context) error {
	p, err := a.processor()
	if err != nil {
		return err
	}

	w, err := processor.NewWorker(p,
		processor.WithConcurrency(a.cfg.Processor.Concurrency),
		processor.WithPollInterval(a.cfg.Processor.PollInterval),
		processor.WithWorkerLogger(a.log.With(logger.Component("worker"))))
	if err != nil {
		return err
	}

	j, err := a.janitor(processor.WithJanitorWaker(w))
	if err != nil {
		return err
	}

	var consumer *trigger.Consumer
	ch, err := a.triggerChannel()
	if err != nil {
		return err
	}
	if ch != nil {
		defer func() { _ = ch.Close() }()

		consumer, err = trigger.NewConsumer(ch, a.cfg.Trigger.Queue, p,
			trigger.WithPrefetch(a.cfg.Trigger.Prefetch),
			trigger.WithConsumerLogger(a.log.With(logger.Component("trigger"))))
		if err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(w.Run(ctx))
	g.Go(j.Run(ctx))
	g.Go(func() error {
		return health.NewServer(a.cfg.Health, a.log.With(logger.Component("health")), a.checks()...).Run(ctx)
	})
	if consumer != nil {
		g.Go(consumer.Run(ctx))
	}

	id, host, pid := w.WorkerInfo()
	a.log.LogAttrs(ctx, slog.LevelInfo, "Notification worker running",
		logger.WorkerID(id),
		slog.String("hostname", host),
		slog.Int("pid", pid),
		slog.Int("concurrency", a.cfg.Processor.Concurrency))

	return g.Wait()
}

func (a *app) runDrain(ctx context.Context) error {
	p, err := a.processor()
	if err != nil {
		return err
	}

	n, err := p.Drain(ctx)
	a.log.LogAttrs(ctx, slog.LevelInfo, "Queue drained", slog.Int("processed", n))
	return err
}

func (a *app) runSweep(ctx context.Context) error {
	j, err := a.janitor()
	if err != nil {
		return err
	}
	_, err = j.Sweep(ctx)
	return err
}

func (a *app) runReap(ctx context.Context) error {
	j, err := a.janitor()
	if err != nil {
		return err
	}
	_, err = j.Reap(ctx)
	return err
}

// runSend creates a notification and wakes the workers through the broker
// when one is configured.
func (a *app) runSend(ctx context.Context, values *commandLineOptionValues) error {
	opts := []notify.ManagerOption{notify.WithManagerLogger(a.log.With(logger.Component("manager")))}

	ch, err := a.triggerChannel()
	if err != nil {
		return err
	}
	if ch != nil {
		defer func() { _ = ch.Close() }()

		pub, err := trigger.NewPublisher(ch, a.cfg.Trigger.Queue,
			trigger.WithSource(hostname()),
			trigger.WithPublisherLogger(a.log.With(logger.Component("trigger"))))
		if err != nil {
			return err
		}
		opts = append(opts, notify.WithWaker(pub))
	}

	m := notify.NewManager(a.store, a.queue, opts...)
	n, err := m.Send(ctx, values.UserID, notify.Type(values.Type), values.Title, values.Content)
	if err != nil {
		return err
	}

	fmt.Println(n.ID)
	return nil
}

func (a *app) runHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Health.CheckTimeout)
	defer cancel()

	if err := health.Probe(ctx, a.checks()...); err != nil {
		return err
	}
	fmt.Println("READY")
	return nil
}

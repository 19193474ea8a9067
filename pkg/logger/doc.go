// Package logger builds the *slog.Logger instances used across the
// notification service.
//
// New applies functional options and picks a text or JSON handler. WithEnvironment
// selects the preset for the ENVIRONMENT value, and Config (LOG_LEVEL,
// LOG_FORMAT) overrides it. Every record also receives the attributes attached
// to its context with WithContextAttrs plus the output of registered
// ContextExtractor callbacks:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Environment, "notifyhub"),
//	    logger.WithContextExtractors(environment.LogAttr),
//	)
//	ctx = logger.WithContextAttrs(ctx, logger.QueueItemID(item.ID))
//	log.LogAttrs(ctx, slog.LevelWarn, "dispatch failed",
//	    logger.Channel(string(n.Type)),
//	    logger.RetryCount(item.RetryCount),
//	    logger.Error(err),
//	)
//
// Components never reach for a global logger: each one accepts a *slog.Logger
// option and falls back to slog.Default(). Error and Errors return an empty
// attribute for nil errors, so callers can pass them unconditionally.
package logger

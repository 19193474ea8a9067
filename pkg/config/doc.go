// Package config loads typed configuration from environment variables.
//
// Every package of the service that needs settings exposes a Config struct with
// caarlos0/env tags (pg.Config, redis.Config, queue.Config, processor.Config,
// channel.EmailConfig, channel.SMSConfig, trigger.Config). The command loads them
// with Load, which parses each type once and caches it:
//
//	var pgCfg pg.Config
//	if err := config.Load(&pgCfg); err != nil {
//		return err
//	}
//
// A .env file in the working directory is picked up automatically. Additional
// files passed with LoadEnv are read before the first Load; variables already
// present in the environment always take precedence.
package config

// Package redis connects the notification service to Redis.
//
// Redis is optional. When REDIS_URL is set, the command connects with Connect
// and hands the client to channel.NewRedisPublisher so in-app notifications are
// published on a per-user pub/sub channel as they are delivered. Healthcheck
// backs the "health" command.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    if err != nil {
//	        return err
//	    }
//	    defer client.Close()
//	    publisher := channel.NewRedisPublisher(client, "notifications")
//	}
package redis

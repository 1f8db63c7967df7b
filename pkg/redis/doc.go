// Package redis connects to Redis with retries and exposes a readiness check.
//
//	cfg, _ := config.Load[redis.Config]()
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		...
//		checks = append(checks, redis.Healthcheck(client))
//	}
//
// Errors wrap the go-redis cause with errors.Join, so both the package
// sentinel and the driver error match errors.Is.
package redis

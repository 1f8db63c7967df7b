// Package config loads typed configuration from environment variables, after
// reading an optional .env file.
//
// Each package owns its Config struct with env tags; the binary composes them:
//
//	httpCfg := config.MustLoad[httpserver.Config]()
//	pgCfg, err := config.Load[pg.Config]()
package config

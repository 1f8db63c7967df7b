package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	goredis "github.com/redis/go-redis/v9"

	"github.com/proclimb/minisystem/modules/users"
	"github.com/proclimb/minisystem/pkg/clientip"
	"github.com/proclimb/minisystem/pkg/config"
	"github.com/proclimb/minisystem/pkg/file"
	"github.com/proclimb/minisystem/pkg/httpserver"
	"github.com/proclimb/minisystem/pkg/logger"
	"github.com/proclimb/minisystem/pkg/pg"
	"github.com/proclimb/minisystem/pkg/postcode"
	"github.com/proclimb/minisystem/pkg/redis"
	"github.com/proclimb/minisystem/pkg/requestid"
	"github.com/proclimb/minisystem/svc/intake"
	"github.com/proclimb/minisystem/svc/intake/advisory"
	"github.com/proclimb/minisystem/svc/registration"
)

const serviceName = "minisystem"

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	LogLevel     string `env:"LOG_LEVEL"`
	MaxBodyBytes int64  `env:"HTTP_MAX_BODY_BYTES" envDefault:"8388608"`
	ServeFiles   bool   `env:"STORAGE_SERVE_LOCAL" envDefault:"true"` // expose local uploads under STORAGE_BASE_URL
}

type settings struct {
	App      appConfig
	HTTP     httpserver.Config
	PG       pg.Config
	Redis    redis.Config
	Postcode postcode.Config
	Storage  file.Config
	Intake   intake.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load[settings]()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.App.Env, serviceName),
		logger.WithLevelName(cfg.App.LogLevel),
		logger.WithContextExtractors(requestid.Extractor(), clientip.Extractor()),
	)
	slog.SetDefault(log)

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if cfg.PG.AutoMigrate {
		if err := pg.Migrate(ctx, pool, cfg.PG, registration.Migrations, registration.MigrationsDir, log); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	checks := []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}}

	// Left nil when Redis is not configured so the directory skips that layer.
	var rdb goredis.Cmdable
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = client.Close() }()
		rdb = client
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	}

	dir, err := postcode.New(cfg.Postcode, rdb, log)
	if err != nil {
		return fmt.Errorf("postal code directory: %w", err)
	}

	storage, err := file.NewStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("document storage: %w", err)
	}

	engine, err := intake.NewFromConfig(dir, cfg.Intake, intake.WithLogger(log))
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(cfg.Intake.TimeZone)
	if err != nil {
		return fmt.Errorf("time zone: %w", err)
	}

	svc := registration.NewService(engine, registration.NewPgStore(pool), storage,
		registration.WithLogger(log),
		registration.WithLocation(loc),
	)

	r := users.Router(users.Options{
		Service:      svc,
		Advisor:      advisory.New(advisory.WithLocation(loc), advisory.WithMaxUploadBytes(cfg.Intake.MaxUploadBytes)),
		Logger:       log,
		MaxBodyBytes: cfg.App.MaxBodyBytes,
		Checks:       checks,
	})
	if cfg.App.ServeFiles && (cfg.Storage.Driver == file.DriverLocal || cfg.Storage.Driver == "") {
		prefix := "/" + strings.Trim(cfg.Storage.BaseURL, "/") + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Storage.LocalDir))))
	}

	log.Info("starting server",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("postcode_provider", cfg.Postcode.Provider),
		slog.Bool("redis", rdb != nil),
	)

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}

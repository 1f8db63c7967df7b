package postcode

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ProviderZipcloud = "zipcloud"
	ProviderStatic   = "static"
)

// Config selects the directory provider and its caching.
type Config struct {
	Provider    string        `env:"POSTCODE_PROVIDER" envDefault:"zipcloud"`
	BaseURL     string        `env:"POSTCODE_BASE_URL" envDefault:"https://zipcloud.ibsnet.co.jp/api/search"`
	HTTPTimeout time.Duration `env:"POSTCODE_HTTP_TIMEOUT" envDefault:"5s"`
	StaticFile  string        `env:"POSTCODE_STATIC_FILE"`
	CacheSize   int           `env:"POSTCODE_CACHE_SIZE" envDefault:"10000"`
	CacheTTL    time.Duration `env:"POSTCODE_CACHE_TTL" envDefault:"24h"`
	MissTTL     time.Duration `env:"POSTCODE_MISS_TTL" envDefault:"1h"`
}

// New builds the configured directory. The in-process LRU is always in front;
// when rdb is non-nil a Redis cache sits between the LRU and the provider.
func New(cfg Config, rdb redis.Cmdable, log *slog.Logger) (Directory, error) {
	var dir Directory
	switch cfg.Provider {
	case ProviderZipcloud, "":
		dir = NewZipcloud(
			WithBaseURL(cfg.BaseURL),
			WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		)
	case ProviderStatic:
		static, err := LoadStaticFile(cfg.StaticFile)
		if err != nil {
			return nil, err
		}
		dir = static
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	if rdb != nil {
		dir = NewRedisCache(dir, rdb, cfg.CacheTTL, cfg.MissTTL, WithCacheLogger(log))
	}
	if cfg.CacheSize > 0 {
		dir = NewMemoryCache(dir, cfg.CacheSize, cfg.CacheTTL, cfg.MissTTL)
	}
	return dir, nil
}

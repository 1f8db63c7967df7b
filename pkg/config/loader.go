package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenv reads .env (or the given files) into the process environment once.
// Variables already set in the environment win. Missing files are ignored.
func LoadDotenv(files ...string) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load(files...)
	})
}

// Load parses environment variables into a new T using `env` and
// `envDefault` struct tags. Nested structs are parsed recursively.
//
//	type Config struct {
//		Timeout time.Duration `env:"POSTCODE_HTTP_TIMEOUT" envDefault:"5s"`
//	}
//	cfg, err := config.Load[Config]()
func Load[T any]() (T, error) {
	LoadDotenv()

	cfg, err := env.ParseAs[T]()
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is Load that panics, for configuration the process cannot start without.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

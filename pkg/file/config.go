package file

import (
	"context"
	"fmt"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures the storage backend for uploaded documents.
type Config struct {
	Driver   string   `env:"STORAGE_DRIVER" envDefault:"local"`
	LocalDir string   `env:"STORAGE_LOCAL_DIR" envDefault:"./storage/uploads"`
	BaseURL  string   `env:"STORAGE_BASE_URL" envDefault:"/files/"`
	S3       S3Config
}

// NewStorage builds the backend named by cfg.Driver.
func NewStorage(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch cfg.Driver {
	case DriverLocal, "":
		return NewLocalStorage(cfg.LocalDir, cfg.BaseURL)
	case DriverS3:
		return NewS3Storage(ctx, cfg.S3, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

package intake

import "time"

// Config holds engine settings loaded from the environment.
type Config struct {
	LookupTimeout  time.Duration `env:"INTAKE_LOOKUP_TIMEOUT" envDefault:"3s"`
	MaxUploadBytes int64         `env:"INTAKE_MAX_UPLOAD_BYTES" envDefault:"2097152"`
	CityMatch      CityMatch     `env:"INTAKE_ADDRESS_CITY_MATCH" envDefault:"contains"`
	TimeZone       string        `env:"INTAKE_TIME_ZONE" envDefault:"Asia/Tokyo"`
}

package config

import "errors"

// ErrParsingConfig wraps env parsing failures (bad values, missing required vars).
var ErrParsingConfig = errors.New("failed to parse environment variables into config")

package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure: empty addr or link_host,
	// non-positive timeout or endpoint id, unknown source or log_format.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps Load failures: an unreadable or malformed config
	// file, a failed env provider, or a value that will not unmarshal.
	ErrLoadConfig = errors.New("load config failed")
)

package config

import "errors"

var (
	// ErrInvalidConfig marks a config that loaded but failed Validate.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrDotEnv marks a .env file that exists but could not be read.
	ErrDotEnv = errors.New("read .env file")
	// ErrConfigFile marks a LOBBY_CONFIG file that is missing or not valid YAML.
	ErrConfigFile = errors.New("read config file")
	// ErrEnvironment marks a failure collecting LOBBY_* variables.
	ErrEnvironment = errors.New("read LOBBY_ environment")
	// ErrDecode marks values that do not fit the Config field types.
	ErrDecode = errors.New("decode config")
)

package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyGormEngine error if config db.gormengine is empty.
	// Supported engines: mysql, postgres, sqlite.
	ErrEmptyGormEngine = errors.New("toml config db.gormengine can not be empty")

	// ErrIncompleteOIDC error if OIDC is enabled without provider URL or client id.
	ErrIncompleteOIDC = errors.New("toml config oidc requires providerurl and clientid when enabled")

	// ErrIncompleteSMTP error if SMTP is enabled without a host.
	ErrIncompleteSMTP = errors.New("toml config smtp requires host when enabled")
)

package config

import (
	"time"

	"github.com/volunteerhub/volunteerhub/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	OIDC      OIDC
	SMTP      SMTP
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	StaticDir      string  // directory with the built SPA assets, served at /
	Session        Session // session settings
}

// OIDC holds the single-sign-on settings. Disabled unless Enabled is set.
type OIDC struct {
	Enabled      bool
	ProviderURL  string // discovery URL, e.g. https://accounts.google.com
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// SMTP holds the outgoing mail settings used by the notification mailer.
type SMTP struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string // sender address, e.g. noreply@volunteerhub.org
}

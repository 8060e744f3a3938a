package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/volunteerhub/volunteerhub/internal/auth"
	"github.com/volunteerhub/volunteerhub/internal/config"
	fiberlogger "github.com/volunteerhub/volunteerhub/internal/logger/adapter/fiber"
	"github.com/volunteerhub/volunteerhub/internal/notify"
	"github.com/volunteerhub/volunteerhub/internal/web/handler"
	"github.com/volunteerhub/volunteerhub/internal/web/handler/account"
	adminsettings "github.com/volunteerhub/volunteerhub/internal/web/handler/admin/settings"
	adminuser "github.com/volunteerhub/volunteerhub/internal/web/handler/admin/user"
	oidchandler "github.com/volunteerhub/volunteerhub/internal/web/handler/auth/oidc"
	"github.com/volunteerhub/volunteerhub/internal/web/handler/collection"
	"github.com/volunteerhub/volunteerhub/internal/web/handler/dashboard"
	"github.com/volunteerhub/volunteerhub/internal/web/handler/document"
	"github.com/volunteerhub/volunteerhub/internal/web/handler/eventrequest"
	"github.com/volunteerhub/volunteerhub/internal/web/handler/host"
	"github.com/volunteerhub/volunteerhub/internal/web/handler/login"
	"github.com/volunteerhub/volunteerhub/internal/web/handler/logout"
	"github.com/volunteerhub/volunteerhub/internal/web/handler/notification"
)

// CheckAlivePath is the liveness endpoint used by load balancers.
const CheckAlivePath = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "VolunteerHub",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(fiberrecover.New())
	}

	// access log middleware
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// session auth middleware for all API routes
	app.Use(AuthMiddleware)

	authService := auth.NewService(db)
	notifier := notify.NewService(db, cfg.SMTP)

	// Add permissions to fiber.Locals middleware (after auth)
	app.Use(auth.PermissionsToLocals(authService))

	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: authService,
	}
	service.alive.Store(true)

	// init handlers (they register their own routes with permission checks)
	if err := login.Handler.Init(app, cfg, db, authService); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	logout.Handler.Init(app, cfg)
	oidchandler.Handler.Init(app, cfg, db)
	account.Handler.Init(app, cfg, db, authService)
	dashboard.Handler.Init(app, cfg, db, authService)
	host.Handler.Init(app, cfg, db, authService)
	eventrequest.Handler.Init(app, cfg, db, authService, notifier)
	document.Handler.Init(app, cfg, db, authService)
	collection.Handler.Init(app, cfg, db, authService)
	notification.Handler.Init(app, cfg, db, authService, notifier)
	adminuser.Handler.Init(app, cfg, db, authService)
	adminsettings.Handler.Init(app, cfg, db, authService)

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	service.serveSPA(app)

	return service
}

// checkAlive reports liveness. It turns 503 during graceful shutdown so
// load balancers drain this instance.
func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("ok")
}

// serveSPA serves the built single-page app. Unknown non-API paths fall
// back to index.html so client-side routing works on hard reloads.
func (s *Service) serveSPA(app *fiber.App) {
	staticDir := s.cfg.Webserver.StaticDir
	if staticDir == "" {
		return
	}

	app.Static("/", staticDir)

	indexFile := filepath.Join(staticDir, "index.html")

	app.Use(func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet || strings.HasPrefix(c.Path(), handler.APIPath) {
			return c.Next()
		}

		return c.SendFile(indexFile)
	})
}

// Package server initializes and runs the carsapi application: it builds
// logging, storage, the token machinery and the HTTP server from config and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/carsapi/internal/logging"
	"github.com/dmitrijs2005/carsapi/internal/server/auth"
	"github.com/dmitrijs2005/carsapi/internal/server/config"
	"github.com/dmitrijs2005/carsapi/internal/server/metrics"
	"github.com/dmitrijs2005/carsapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/carsapi/internal/server/rest"
	"github.com/dmitrijs2005/carsapi/internal/server/services"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.HTTPServer
	router *gin.Engine
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// NewApp builds the application. With an empty DatabaseDSN all data is kept
// in memory; otherwise the Postgres schema is migrated before returning.
func NewApp(c *config.Config) (*App, error) {
	return newApp(context.Background(), c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogLevel, logOut)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	codec, err := auth.NewCodec([]byte(c.SecretKey), c.SigningAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("token codec init error: %w", err)
	}

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "DATABASE_DSN is empty, using in-memory storage")
		rm = repomanager.NewMemoryRepositoryManager()
	} else {
		db, err = sqlOpen("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db ping error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db migration error: %w", err)
		}
	}

	issuer := auth.NewIssuer(codec, c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	validator := auth.NewValidator(codec, issuer, logger)

	us := services.NewUserService(db, rm, issuer, c, logger)
	vs := services.NewVehicleService(db, rm, logger)

	m := metrics.New()
	cookies := rest.CookieJar{
		Secure:     c.SecureCookies,
		AccessTTL:  issuer.AccessTTL(),
		RefreshTTL: issuer.RefreshTTL(),
	}

	gin.SetMode(gin.ReleaseMode)
	router := rest.NewRouter(rest.Handlers{
		Gate:     rest.NewGate(validator, cookies, m, logger),
		Sessions: rest.NewSessionHandler(us, cookies, logger),
		Vehicles: rest.NewVehicleHandler(vs, logger),
		Metrics:  m,
		Logger:   logger,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: rest.NewHTTPServer(c.EndpointAddrHTTP, router, logger),
		router: router,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "algorithm", app.config.SigningAlgorithm)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}

// Package server wires the Couple Diaries backend together: database,
// migrations, services, the gRPC endpoint and the ops HTTP endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/couplediaries/couplediaries/internal/logging"
	"github.com/couplediaries/couplediaries/internal/server/config"
	"github.com/couplediaries/couplediaries/internal/server/mailer"
	"github.com/couplediaries/couplediaries/internal/server/ops"
	"github.com/couplediaries/couplediaries/internal/server/repositories/repomanager"
	"github.com/couplediaries/couplediaries/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/couplediaries/couplediaries/internal/server/grpc"
)

// App owns the server dependencies and runs the gRPC and ops servers.
type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	profileService *services.ProfileService
	cardService    *services.CardService
}

// NewApp connects to the database, applies migrations and wires the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	ml := mailer.New(c.SMTPAddr, c.SMTPUser, c.SMTPPassword, c.MailFrom, logger)
	storage := services.NewS3Storage(c)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    services.NewUserService(db, rm, ml, logger, c),
		profileService: services.NewProfileService(db, rm, storage),
		cardService:    services.NewCardService(db, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves gRPC and ops traffic until a signal arrives or one of the
// servers fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.profileService,
			app.cardService, app.config.SecretKey, ops.UnaryMetricsInterceptor)
		return s.Run(ctx)
	})

	g.Go(func() error {
		return ops.NewServer(app.config.OpsAddr, app.db, app.userService, app.logger).Run(ctx)
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "Server stopped with error", "error", err)
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Warn(ctx, "Closing database failed", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}

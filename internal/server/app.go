// Package server wires the tracker together: it opens PostgreSQL and runs
// the migrations, selects the document store, builds the mail dispatcher and
// the services, and serves the HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Shubham-musmade/interview-tracker/internal/logging"
	"github.com/Shubham-musmade/interview-tracker/internal/server/api"
	"github.com/Shubham-musmade/interview-tracker/internal/server/config"
	"github.com/Shubham-musmade/interview-tracker/internal/server/notify"
	"github.com/Shubham-musmade/interview-tracker/internal/server/repositories/repomanager"
	"github.com/Shubham-musmade/interview-tracker/internal/server/services"
	"github.com/Shubham-musmade/interview-tracker/internal/server/storage"
)

// App owns the database handle and every service built on top of it.
type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	userService        *services.UserService
	emailService       *services.EmailService
	companyService     *services.CompanyService
	positionService    *services.PositionService
	documentService    *services.DocumentService
	applicationService *services.ApplicationService
	interviewService   *services.InterviewService
	noteService        *services.NoteService
	statisticsService  *services.StatisticsService
}

// NewApp connects to the database, applies pending migrations and builds the
// services. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := newLogger(os.Stdout)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := newStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := c.ValidateEmailSettings(); err != nil {
		logger.Warn(ctx, "outbound email is not fully configured", "error", err)
	}
	dispatcher := notify.NewDispatcher(
		notify.Config{FromAddress: c.FromAddress},
		notify.NewSMTPTransport(notify.SMTPConfig{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			User:     c.SMTPUser,
			Password: c.SMTPPassword,
		}),
		store,
		logger,
	)

	return &App{
		config:             c,
		logger:             logger,
		db:                 db,
		userService:        services.NewUserService(db, rm, c),
		emailService:       services.NewEmailService(db, rm),
		companyService:     services.NewCompanyService(db, rm),
		positionService:    services.NewPositionService(db, rm),
		documentService:    services.NewDocumentService(db, rm, store, logger),
		applicationService: services.NewApplicationService(db, rm, dispatcher, c, logger),
		interviewService:   services.NewInterviewService(db, rm, dispatcher, c, logger),
		noteService:        services.NewNoteService(db, rm),
		statisticsService:  services.NewStatisticsService(db, rm),
	}, nil
}

func newLogger(w io.Writer) logging.Logger {
	return logging.NewJSONLogger(w, slog.LevelInfo)
}

func newStore(ctx context.Context, c *config.Config) (storage.Store, error) {
	switch c.StorageBackend {
	case config.StorageLocal:
		return storage.NewLocalStore(c.MediaRoot)
	case config.StorageS3:
		return storage.NewS3Store(ctx, storage.S3Config{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}

// Logger returns the application logger.
func (app *App) Logger() logging.Logger { return app.logger }

// Users exposes account management for command-line tools.
func (app *App) Users() *services.UserService { return app.userService }

// Close releases the database handle.
func (app *App) Close() error { return app.db.Close() }

// SendReminders emails deadline reminders and reminders for interview rounds
// starting within the configured window. Both batches are attempted.
func (app *App) SendReminders(ctx context.Context) error {
	now := time.Now()

	deadlines, derr := app.applicationService.DeadlineReminders(ctx, now)
	if derr != nil {
		app.logger.Error(ctx, "deadline reminders failed", "error", derr)
	} else {
		app.logger.Info(ctx, "deadline reminders sent", "count", deadlines)
	}

	interviews, ierr := app.interviewService.Reminders(ctx, now)
	if ierr != nil {
		app.logger.Error(ctx, "interview reminders failed", "error", ierr)
	} else {
		app.logger.Info(ctx, "interview reminders sent", "count", interviews)
	}

	if derr != nil {
		return derr
	}
	return ierr
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := api.NewServer(app.config.EndpointAddrHTTP, app.logger, api.Services{
		Users:        app.userService,
		Emails:       app.emailService,
		Companies:    app.companyService,
		Positions:    app.positionService,
		Documents:    app.documentService,
		Applications: app.applicationService,
		Interviews:   app.interviewService,
		Notes:        app.noteService,
		Statistics:   app.statisticsService,
	}, app.db.PingContext, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves the API until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}

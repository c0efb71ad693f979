package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/bcits/ticketdesk/internal"
	"github.com/bcits/ticketdesk/internal/account"
	accountPostgres "github.com/bcits/ticketdesk/internal/account/postgres"
	"github.com/bcits/ticketdesk/internal/activity"
	activityPostgres "github.com/bcits/ticketdesk/internal/activity/postgres"
	"github.com/bcits/ticketdesk/internal/admin"
	adminPostgres "github.com/bcits/ticketdesk/internal/admin/postgres"
	"github.com/bcits/ticketdesk/internal/auth"
	authPostgres "github.com/bcits/ticketdesk/internal/auth/postgres"
	"github.com/bcits/ticketdesk/internal/bin"
	binPostgres "github.com/bcits/ticketdesk/internal/bin/postgres"
	"github.com/bcits/ticketdesk/internal/core/events"
	"github.com/bcits/ticketdesk/internal/dashboard"
	dashboardPostgres "github.com/bcits/ticketdesk/internal/dashboard/postgres"
	"github.com/bcits/ticketdesk/internal/kb"
	kbPostgres "github.com/bcits/ticketdesk/internal/kb/postgres"
	"github.com/bcits/ticketdesk/internal/permission"
	permissionPostgres "github.com/bcits/ticketdesk/internal/permission/postgres"
	"github.com/bcits/ticketdesk/internal/settings"
	settingsPostgres "github.com/bcits/ticketdesk/internal/settings/postgres"
	"github.com/bcits/ticketdesk/internal/team"
	teamPostgres "github.com/bcits/ticketdesk/internal/team/postgres"
	"github.com/bcits/ticketdesk/internal/ticket"
	ticketPostgres "github.com/bcits/ticketdesk/internal/ticket/postgres"
	"github.com/bcits/ticketdesk/internal/transport"
	"github.com/bcits/ticketdesk/internal/transport/rest"
	"github.com/bcits/ticketdesk/internal/usermgmt"
	usermgmtPostgres "github.com/bcits/ticketdesk/internal/usermgmt/postgres"
	"github.com/bcits/ticketdesk/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting http server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	env := "development"
	if config.Observability.Logging.Format == "json" {
		env = "production"
	}
	logger.Init(env)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	eventBus := events.NewEventBus(log)
	recorder := activity.NewRecorder(activityPostgres.NewActivityRepository(gormDB), log)
	recorder.Register(eventBus)

	baseHandler := transport.NewBaseHandler(log)

	authRepo := authPostgres.NewRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)
	rbac := auth.NewRBACAuthorization(authService, log)

	accountService := account.NewService(accountPostgres.NewAccountRepository(gormDB), eventBus, log)
	binService := bin.NewService(binPostgres.NewBinRepository(gormDB), eventBus, log)
	teamService := team.NewService(teamPostgres.NewTeamRepository(gormDB), log)
	ticketService := ticket.NewService(ticketPostgres.NewTicketRepository(gormDB), eventBus, log)
	kbService := kb.NewService(kbPostgres.NewKBRepository(gormDB), log)
	dashboardService := dashboard.NewService(dashboardPostgres.NewDashboardRepository(gormDB), log)
	adminService := admin.NewService(adminPostgres.NewAdminRepository(gormDB), eventBus, log)
	usermgmtService := usermgmt.NewService(usermgmtPostgres.NewUserRepository(gormDB), eventBus, log)
	permissionService := permission.NewService(permissionPostgres.NewPermissionRepository(gormDB), eventBus, log)
	settingsService := settings.NewService(settingsPostgres.NewSettingsRepository(gormDB), eventBus, log)

	handlers := rest.Handlers{
		Auth:       authHandler,
		Account:    account.NewHandler(baseHandler, accountService),
		Bin:        bin.NewHandler(baseHandler, binService),
		Team:       team.NewHandler(baseHandler, teamService),
		Ticket:     ticket.NewHandler(baseHandler, ticketService),
		KB:         kb.NewHandler(baseHandler, kbService),
		Dashboard:  dashboard.NewHandler(baseHandler, dashboardService),
		Admin:      admin.NewHandler(baseHandler, adminService),
		Usermgmt:   usermgmt.NewHandler(baseHandler, usermgmtService),
		Permission: permission.NewHandler(permissionService),
		Settings:   settings.NewHandler(baseHandler, settingsService),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, handlers, rbac, log)

	return &Dependencies{
		Config: config,
		Logger: log,
		DB:     db,
		Router: router,
	}, nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

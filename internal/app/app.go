package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "pdfdesk/docs"
	"pdfdesk/internal/config"
	"pdfdesk/internal/handlers"
	"pdfdesk/internal/middleware"
	"pdfdesk/internal/pdf"
	"pdfdesk/internal/repositories"
	"pdfdesk/internal/routes"
	"pdfdesk/internal/services"
	"pdfdesk/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg    *config.Config
	log    *zap.Logger
	router *gin.Engine
	close  []func(context.Context) error
}

// Run loads the config, serves until SIGINT/SIGTERM and then shuts down.
func Run() {
	cfg := config.LoadConfig()

	logger, err := NewLogger(cfg.Server.Environment)
	if err != nil {
		panic("Failed to init logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init app", zap.Error(err))
	}
	if err := a.Serve(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
	a.Close()
}

func NewLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// New wires store, services, handlers and router from cfg.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{cfg: cfg, log: logger}

	// === Store ===
	userRepo, documentRepo, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	// === Files ===
	files := storage.NewLocal(cfg.Files.UploadDir)
	if err := files.EnsureDir(); err != nil {
		a.Close()
		return nil, err
	}

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
	otpService := services.NewOTPService(cfg.Auth.OTPTTL)
	emailService := services.NewEmailService(services.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUser:     cfg.Email.SMTPUser,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		InlineImage:  cfg.Email.InlineImage,
		DryRun:       cfg.Email.DryRun,
	}, logger.Named("mail"))
	userService := services.NewUserService(userRepo, authService, otpService, emailService, logger.Named("auth"))
	documentService := services.NewDocumentService(
		documentRepo,
		files,
		pdf.NewTextExtractor(),
		pdf.NewReportGenerator(cfg.Files.FontPath),
		logger.Named("documents"),
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	documentHandler := handlers.NewDocumentHandler(documentService)

	// === Gin ===
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(middleware.Recovery(logger))
	router.Use(corsMiddleware())

	routes.SetupRoutes(router, routes.Options{
		BasePath:  cfg.Server.BasePath,
		UploadDir: files.Dir,
		Tokens:    authService,
	}, authHandler, userHandler, documentHandler)

	a.router = router
	return a, nil
}

func (a *App) Router() *gin.Engine { return a.router }

func (a *App) openStore(ctx context.Context) (repositories.UserRepository, repositories.DocumentRepository, error) {
	db := a.cfg.Database
	switch db.Driver {
	case config.DriverPostgres:
		conn, err := repositories.OpenPostgres(ctx, db.DSN)
		if err != nil {
			return nil, nil, err
		}
		a.close = append(a.close, func(context.Context) error { return conn.Close() })
		if db.Migrate {
			if err := repositories.RunMigrations(ctx, conn); err != nil {
				return nil, nil, err
			}
			a.log.Info("migrations applied")
		}
		return repositories.NewUserRepository(conn), repositories.NewDocumentRepository(conn), nil

	case config.DriverMongo:
		client, mdb, err := repositories.ConnectMongo(ctx, db.MongoURI, db.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		a.close = append(a.close, client.Disconnect)
		return repositories.NewMongoUserRepository(mdb), repositories.NewMongoDocumentRepository(mdb), nil

	case config.DriverMemory:
		a.log.Warn("using in-memory store; data is lost on restart")
		store := repositories.NewMemoryStore()
		return store.Users(), store.Documents(), nil
	}
	return nil, nil, fmt.Errorf("unknown database driver %q", db.Driver)
}

// Serve listens on the configured port until ctx is done, then drains
// in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      a.router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("server started", zap.String("addr", srv.Addr), zap.String("base_path", "/"+a.cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		a.log.Info("server stopped")
		return nil
	})
	return g.Wait()
}

// Close releases the store connections in reverse order of opening.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(a.close) - 1; i >= 0; i-- {
		if err := a.close[i](ctx); err != nil {
			a.log.Warn("close store", zap.Error(err))
		}
	}
	a.close = nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

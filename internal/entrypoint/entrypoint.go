package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estantedigital/plataforma/internal/auth"
	"github.com/estantedigital/plataforma/internal/config"
	"github.com/estantedigital/plataforma/internal/database"
	"github.com/estantedigital/plataforma/internal/database/accounts"
	"github.com/estantedigital/plataforma/internal/database/pessoas"
	"github.com/estantedigital/plataforma/internal/docstore"
	"github.com/estantedigital/plataforma/internal/docstore/books"
	"github.com/estantedigital/plataforma/internal/docstore/profiles"
	"github.com/estantedigital/plataforma/internal/docstore/users"
	http_controllers "github.com/estantedigital/plataforma/internal/http"
	"github.com/estantedigital/plataforma/internal/scheduler"
	"github.com/estantedigital/plataforma/internal/sync"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until an interrupt, then shuts down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// components holds everything wired during bootstrap.
type components struct {
	db           *database.Database
	store        *docstore.Store
	synchronizer *sync.Synchronizer
	pessoaRepo   *pessoas.Repository
	authService  *auth.Service
	bookRepo     *books.Repository
}

func buildComponents(cfg *config.Config) (*components, error) {
	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("relational store: %w", err)
	}

	ctx := context.Background()
	store, err := docstore.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("document store: %w", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("document store indexes: %w", err)
	}

	pessoaRepo := pessoas.NewRepository(db.DB)
	accountRepo := accounts.NewRepository(db.DB)
	profileRepo := profiles.NewRepository(store.Profiles())
	userRepo := users.NewRepository(store.Users())
	bookRepo := books.NewRepository(store.Books())

	synchronizer := sync.NewSynchronizer(pessoaRepo, accountRepo, profileRepo, userRepo)
	authService := auth.NewService(synchronizer, pessoaRepo, userRepo, cfg.Auth)

	return &components{
		db:           db,
		store:        store,
		synchronizer: synchronizer,
		pessoaRepo:   pessoaRepo,
		authService:  authService,
		bookRepo:     bookRepo,
	}, nil
}

// Run wires every component and serves until shutdown.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Plataforma v%s", version)

	if cfg.Auth.JWTSecret == "" {
		if cfg.Global.IsProduction() {
			log.Fatal("JWT_KEY must be set in production")
		}
		log.Printf("WARNING: JWT_KEY not set, using development fallback")
		cfg.Auth.JWTSecret = "fallback-secret-key-for-development"
	}

	comp, err := buildComponents(cfg)
	if err != nil {
		log.Fatalf("Bootstrap failed: %v", err)
	}

	var syncScheduler *scheduler.SyncScheduler
	if cfg.Sync.Enabled {
		syncScheduler = scheduler.NewSyncScheduler(comp.synchronizer, cfg.Sync.Schedule)
		if err := syncScheduler.Start(); err != nil {
			log.Fatalf("Failed to start sync scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		AuthController:   http_controllers.NewAuthController(comp.authService, comp.pessoaRepo, cfg.Global.Env),
		SyncController:   http_controllers.NewSyncController(comp.synchronizer, cfg.Global.Env),
		BooksController:  http_controllers.NewBooksController(comp.bookRepo, cfg.Global.Env),
		HealthController: http_controllers.NewHealthController(comp.db, comp.store, version),
		JWTSecret:        []byte(cfg.Auth.JWTSecret),
	})

	Serve(router, cfg, func(ctx context.Context) {
		if syncScheduler != nil {
			syncScheduler.Stop()
		}
		if err := comp.store.Close(ctx); err != nil {
			log.Printf("Error closing document store: %v", err)
		}
		if err := comp.db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	})
}

// RunSyncAll performs one bulk migration and exits. Used by the CLI
// sync-all command.
func RunSyncAll(cfg *config.Config) error {
	comp, err := buildComponents(cfg)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		comp.store.Close(ctx)
		comp.db.Close()
	}()

	outcomes, err := comp.synchronizer.SyncAll(context.Background())
	if err != nil {
		return err
	}

	summary := sync.Summarize(outcomes)
	fmt.Printf("Migration finished: total=%d successful=%d failed=%d\n",
		summary.Total, summary.Successful, summary.Failed)
	for _, o := range outcomes {
		if o.Status == "error" {
			fmt.Printf("  %s: %s\n", o.Email, o.Error)
		}
	}
	return nil
}

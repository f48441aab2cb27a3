package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/catalog"
	"libraryapi/internal/httpx"
	"libraryapi/internal/ingest"
	"libraryapi/internal/journal"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	loadEnvFiles()
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := loadCatalog(cfg)

	a := &app{
		cfg:     cfg,
		catalog: svc,
		auth: auth.NewService(auth.Config{
			Secret:       cfg.JWTSecret,
			Username:     cfg.StaffUser,
			PasswordHash: cfg.StaffHash,
		}),
		limiter: httpx.NewRateLimitMiddleware(cfg.RateRPS, cfg.RateBurst),
	}
	defer a.limiter.Stop()

	if cfg.StaffHash == "" {
		log.Println("STAFF_PASSWORD_HASH not set, staff login disabled")
	}

	if cfg.DBDSN != "" {
		pool := mustOpenDB(ctx, cfg.DBDSN)
		defer pool.Close()
		a.db = pool
		a.journal = journal.NewService(journal.NewPostgresRepo(pool, cfg.DBTimeout))
	} else {
		log.Println("DB_DSN not set, loan journal disabled")
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      a.routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on %s index=%s", cfg.Addr, cfg.IndexKind)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}

// loadCatalog builds the catalog and fills it from the bulk files. Load
// failures are logged and the server starts with whatever was read.
func loadCatalog(cfg config) *catalog.Service {
	svc := catalog.NewService(cfg.IndexKind)
	if _, err := ingest.LoadFiles(svc, cfg.UsersFile, cfg.BooksFile); err != nil {
		log.Printf("bulk load incomplete: %v", err)
	}
	return svc
}

func mustOpenDB(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

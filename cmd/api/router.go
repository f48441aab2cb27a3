package main

import (
	"context"
	"net/http"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/catalog"
	"libraryapi/internal/httpx"
	"libraryapi/internal/journal"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type app struct {
	cfg     config
	catalog *catalog.Service
	journal *journal.Service
	auth    *auth.Service
	db      pinger
	limiter *httpx.RateLimitMiddleware
}

func (a *app) routes() http.Handler {
	catalogHandler := catalog.NewHTTPHandler(a.catalog, a.journal)
	journalHandler := journal.NewHTTPHandler(a.journal)
	authHandler := auth.NewHTTPHandler(a.auth)
	staff := httpx.AuthMiddleware(a.cfg.JWTSecret)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", a.ready)

	router.HandleFunc("POST /v1/auth/login", authHandler.Login)

	router.Handle("POST /v1/users", staff(http.HandlerFunc(catalogHandler.CreateUser)))
	router.HandleFunc("GET /v1/users", catalogHandler.ListUsers)
	router.HandleFunc("GET /v1/users/{document}", catalogHandler.GetUser)

	router.Handle("POST /v1/books", staff(http.HandlerFunc(catalogHandler.AddBook)))
	router.HandleFunc("GET /v1/books", catalogHandler.ListBooks)
	router.HandleFunc("GET /v1/books/{title}", catalogHandler.GetBook)

	router.Handle("POST /v1/loans", staff(http.HandlerFunc(catalogHandler.Lend)))
	router.Handle("POST /v1/returns", staff(http.HandlerFunc(catalogHandler.Return)))
	router.Handle("GET /v1/loans/events", staff(http.HandlerFunc(journalHandler.ListRecent)))
	router.HandleFunc("GET /v1/stats", catalogHandler.Stats)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(a.cfg.EnableHSTS),
		httpx.CORSMiddleware(a.cfg.CORS),
		a.limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(a.cfg.MaxBody),
	)
}

// ready reports whether the journal database answers. Without a database the
// server is ready as soon as it serves.
func (a *app) ready(w http.ResponseWriter, r *http.Request) {
	if a.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := a.db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

//go:build !wasm

// Command authform serves the signup, signin and account settings API next to
// the static pages and wasm bundle that submit to it.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/tinywasm/authform"
	_ "modernc.org/sqlite"
)

type serverConfig struct {
	Addr            string        `env:"AUTHFORM_ADDR" envDefault:":8080"`
	DB              string        `env:"AUTHFORM_DB" envDefault:"authform.db"`
	Static          string        `env:"AUTHFORM_STATIC" envDefault:"web"`
	SessionCookie   string        `env:"AUTHFORM_SESSION_COOKIE" envDefault:"session"`
	SessionTTL      int           `env:"AUTHFORM_SESSION_TTL" envDefault:"86400"`
	TrustProxy      bool          `env:"AUTHFORM_TRUST_PROXY" envDefault:"false"`
	InsecureCookies bool          `env:"AUTHFORM_INSECURE_COOKIES" envDefault:"false"`
	SignupRedirect  string        `env:"AUTHFORM_SIGNUP_REDIRECT" envDefault:"/meetings"`
	SigninRedirect  string        `env:"AUTHFORM_SIGNIN_REDIRECT" envDefault:"/meetings"`
	PurgeInterval   time.Duration `env:"AUTHFORM_PURGE_INTERVAL"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	db, err := sql.Open("sqlite", cfg.DB)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := authform.Init(authform.NewDB(db), authform.Config{
		SessionCookieName: cfg.SessionCookie,
		SessionTTL:        cfg.SessionTTL,
		TrustProxy:        cfg.TrustProxy,
		InsecureCookies:   cfg.InsecureCookies,
		SignupRedirect:    cfg.SignupRedirect,
		SigninRedirect:    cfg.SigninRedirect,
	}); err != nil {
		log.Fatalf("init: %v", err)
	}

	r := mux.NewRouter()
	authform.Routes(r)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.Static))).Methods(http.MethodGet, http.MethodHead)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	every := cfg.PurgeInterval
	if every == 0 {
		every = authform.SweepInterval()
	}
	go purgeSessions(ctx, every)

	go func() {
		log.Printf("authform listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func purgeSessions(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := authform.PurgeExpiredSessions(); err != nil {
				log.Printf("purge sessions: %v", err)
			}
		}
	}
}

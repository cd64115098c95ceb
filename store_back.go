//go:build !wasm

package authform

import "time"

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Status    string `json:"status"` // "active", "suspended"
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

type Session struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type Identity struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Provider   string `json:"provider"`
	ProviderID string `json:"provider_id"`
	CreatedAt  int64  `json:"created_at"`
}

type Config struct {
	SessionCookieName string // default: "session"
	SessionTTL        int    // default: 86400 (24h)
	TrustProxy        bool   // default: false
	InsecureCookies   bool   // default: false; set for plain-http development
	SignupRedirect    string // default: "/meetings"
	SigninRedirect    string // default: "/meetings"
	AccountRedirect   string // default: "/account-settings"
}

type Store struct {
	exec   Executor
	cache  *sessionCache
	config Config
}

var store *Store

func Init(exec Executor, cfg Config) error {
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "session"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 86400
	}
	if cfg.SignupRedirect == "" {
		cfg.SignupRedirect = "/meetings"
	}
	if cfg.SigninRedirect == "" {
		cfg.SigninRedirect = "/meetings"
	}
	if cfg.AccountRedirect == "" {
		cfg.AccountRedirect = "/account-settings"
	}
	if err := runMigrations(exec); err != nil {
		return err
	}
	store = &Store{
		exec:   exec,
		cache:  newSessionCache(cfg.SessionTTL),
		config: cfg,
	}
	return store.cache.load(exec, time.Now().Unix())
}

// SweepInterval is how often PurgeExpiredSessions should run when no
// interval is configured. It follows the session TTL.
func SweepInterval() time.Duration {
	if store == nil {
		return time.Hour
	}
	return store.cache.sweepInterval()
}

func SessionCookieName() string {
	if store == nil {
		return "session"
	}
	return store.config.SessionCookieName
}

func secureCookies() bool {
	return store == nil || !store.config.InsecureCookies
}

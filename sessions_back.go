//go:build !wasm

package authform

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/tinywasm/unixid"
)

func CreateSession(userID, ip, userAgent string) (Session, error) {
	u, err := unixid.NewUnixID()
	if err != nil {
		return Session{}, err
	}

	now := time.Now().Unix()
	sess := Session{
		ID:        u.GetNewID(),
		UserID:    userID,
		ExpiresAt: now + int64(store.config.SessionTTL),
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: now,
	}

	if err := store.exec.Exec(
		`INSERT INTO user_sessions (id, user_id, expires_at, ip, user_agent, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.ExpiresAt, sess.IP, sess.UserAgent, sess.CreatedAt,
	); err != nil {
		return Session{}, err
	}
	store.cache.put(sess, now)
	return sess, nil
}

func GetSession(id string) (Session, error) {
	now := time.Now().Unix()
	switch s, res := store.cache.lookup(id, now); res {
	case cacheHit:
		return s, nil
	case cacheExpired:
		return Session{}, ErrSessionExpired
	}

	var s Session
	err := store.exec.QueryRow(
		"SELECT id, user_id, expires_at, ip, user_agent, created_at FROM user_sessions WHERE id = ?",
		id,
	).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.IP, &s.UserAgent, &s.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}

	if s.ExpiresAt < now {
		return Session{}, ErrSessionExpired
	}

	store.cache.put(s, now)
	return s, nil
}

func DeleteSession(id string) error {
	store.cache.drop(id)
	return store.exec.Exec("DELETE FROM user_sessions WHERE id = ?", id)
}

func PurgeExpiredSessions() error {
	now := time.Now().Unix()
	if n := store.cache.sweep(now); n > 0 {
		log.Printf("authform: dropped %d expired cached sessions", n)
	}
	return store.exec.Exec("DELETE FROM user_sessions WHERE expires_at < ?", now)
}

// sessionFromRequest resolves the session cookie to a live session.
func sessionFromRequest(r *http.Request) (Session, error) {
	c, err := r.Cookie(SessionCookieName())
	if err != nil || c.Value == "" {
		return Session{}, ErrNotAuthenticated
	}
	sess, err := GetSession(c.Value)
	if err != nil {
		return Session{}, ErrNotAuthenticated
	}
	return sess, nil
}

func setSessionCookie(w http.ResponseWriter, sess Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName(),
		Value:    sess.ID,
		HttpOnly: true,
		Secure:   secureCookies(),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   store.config.SessionTTL,
		Path:     "/",
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName(),
		Value:    "",
		HttpOnly: true,
		Secure:   secureCookies(),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Path:     "/",
	})
}

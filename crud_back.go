//go:build !wasm

package authform

import (
	"database/sql"
	"strings"
	"time"

	"github.com/tinywasm/unixid"
)

const userColumns = "id, email, first_name, last_name, status, created_at, updated_at"

// normalizeEmail lowercases and trims so lookups and the unique index agree.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func CreateUser(email, firstName, lastName string) (User, error) {
	u, err := unixid.NewUnixID()
	if err != nil {
		return User{}, err
	}

	id := u.GetNewID()
	now := time.Now().Unix()
	email = normalizeEmail(email)

	if err := store.exec.Exec(
		`INSERT INTO users (id, email, first_name, last_name, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		id, email, firstName, lastName, now, now,
	); err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return User{
		ID:        id,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func scanUser(row Scanner) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func GetUser(id string) (User, error) {
	return scanUser(store.exec.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

func GetUserByEmail(email string) (User, error) {
	return scanUser(store.exec.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", normalizeEmail(email)))
}

func UpdateUser(id, firstName, lastName, email string) error {
	err := store.exec.Exec(
		"UPDATE users SET first_name = ?, last_name = ?, email = ?, updated_at = ? WHERE id = ?",
		firstName, lastName, normalizeEmail(email), time.Now().Unix(), id,
	)
	if err != nil && isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func SuspendUser(id string) error {
	return store.exec.Exec("UPDATE users SET status = 'suspended' WHERE id = ?", id)
}

func ReactivateUser(id string) error {
	return store.exec.Exec("UPDATE users SET status = 'active' WHERE id = ?", id)
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint: unique") ||
		strings.Contains(err.Error(), "duplicate key")
}

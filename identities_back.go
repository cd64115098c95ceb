//go:build !wasm

package authform

import (
	"database/sql"
	"time"

	"github.com/tinywasm/unixid"
)

// localProvider identities hold the bcrypt hash in ProviderID.
const localProvider = "local"

func createIdentity(userID, provider, providerID string) error {
	u, err := unixid.NewUnixID()
	if err != nil {
		return err
	}

	return store.exec.Exec(
		`INSERT INTO user_identities (id, user_id, provider, provider_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.GetNewID(), userID, provider, providerID, time.Now().Unix(),
	)
}

func getIdentity(userID, provider string) (Identity, error) {
	var i Identity
	err := store.exec.QueryRow(
		"SELECT id, user_id, provider, provider_id, created_at FROM user_identities WHERE user_id = ? AND provider = ?",
		userID, provider,
	).Scan(&i.ID, &i.UserID, &i.Provider, &i.ProviderID, &i.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Identity{}, ErrNotFound
		}
		return Identity{}, err
	}
	return i, nil
}

func upsertIdentity(userID, provider, providerID string) error {
	_, err := getIdentity(userID, provider)
	switch err {
	case nil:
		return store.exec.Exec("UPDATE user_identities SET provider_id = ? WHERE user_id = ? AND provider = ?", providerID, userID, provider)
	case ErrNotFound:
		return createIdentity(userID, provider, providerID)
	default:
		return err
	}
}

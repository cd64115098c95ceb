//go:build !wasm

package authform

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var PasswordHashCost = bcrypt.DefaultCost

func Login(email, password string) (User, error) {
	u, err := GetUserByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if u.Status == "suspended" {
		return User{}, ErrSuspended
	}
	if err := VerifyPassword(u.ID, password); err != nil {
		return User{}, err
	}
	return u, nil
}

func SetPassword(userID, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return upsertIdentity(userID, localProvider, hash)
}

// hashPassword runs before any row is written, so a refused password never
// leaves a user behind without one.
func hashPassword(password string) (string, error) {
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return "", ErrWeakPassword
	}
	if len(password) > PasswordMaxLength {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(userID, password string) error {
	identity, err := getIdentity(userID, localProvider)
	if err != nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.ProviderID), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

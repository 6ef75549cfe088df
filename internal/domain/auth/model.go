// Package auth provides the authentication gate. Identity is only used
// to guard route access; no business logic depends on it beyond the
// presence or absence of a session.
package auth

import (
	"time"

	"petstock/internal/core/id"
)

// User is a login account for the store.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

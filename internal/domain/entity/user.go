// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the single identity record of the system. The database generates
// the numeric ID on insert; username is unique and case-sensitive as stored.
// PasswordHash holds the bcrypt output, never the plaintext.
type User struct {
	ID           int64     // Generated, strictly increasing identifier.
	Username     string    // Unique login identifier.
	PasswordHash string    // Salted bcrypt hash of the user's password.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

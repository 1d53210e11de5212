package model

import "time"

// User mirrors the 'users' table.  Username uniqueness is enforced by the
// storage layer.  The password hash never leaves the repository layer.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Email        *string   // users.email (nullable)
	CreatedAt    time.Time // users.created_at
}

package model

import "time"

// User represents a row of the `user` table.  Users are provisioned out of
// band (see cmd/useradm); the HTTP API only ever reads them.
//
// Fields:
//
//	ID        – auto-increment primary key.
//	Username  – unique login name, the lookup key.
//	Pwd       – hex AES-CBC ciphertext of the password, keyed by Salt.
//	Salt      – random hex string; doubles as AES key material.
//	Email     – contact address, copied into issued tokens.
//	DeletedAt – soft-delete marker; rows with a value are invisible to lookups.
type User struct {
	ID        uint64
	Username  string
	Pwd       string
	Salt      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Deleted reports whether the user has been soft-deleted.
func (u User) Deleted() bool { return u.DeletedAt != nil }

package auth

import "time"

// User is a staff account tied to exactly one department. Accounts are created
// during bootstrap seeding and never mutated by the request flow.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Departamento string
	CreatedAt    time.Time
}

// Session is the per-request identity resolved from the session cookie.
type Session struct {
	Departamento string
	Username     string
}

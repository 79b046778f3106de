package entities

import "time"

// Staff is an employee account. Roles hold the role names granted at the
// store; tokens snapshot them at login, so a role change only takes effect
// after the employee re-authenticates.
//
// Storage model (DynamoDB):
//   - PK: id (number, allocated from the counters table)
//   - an email#<email> marker item reserves the login and points back to id
type Staff struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Client is a customer account. Clients authenticate through server-side
// sessions, never through bearer tokens.
//
// Storage model mirrors Staff (PK id, email marker item).
type Client struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

package model

import "time"

// User represents an account that can operate the dealership system
type User struct {
	ID           int64     `json:"id"`
	Fullname     string    `json:"fullname"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthUser is the identity resolved from the auth cookie and attached to
// the request context. It carries only non-secret fields.
type AuthUser struct {
	ID       int64  `json:"id"`
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

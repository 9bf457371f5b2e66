package entity

import (
	"database/sql"
	"time"
)

const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64          `db:"id"`
	Email        string         `db:"email"`
	Password     string         `db:"password"`
	FirstName    sql.NullString `db:"first_name"`
	LastName     sql.NullString `db:"last_name"`
	Username     sql.NullString `db:"username"`
	Role         string         `db:"role"`
	BusinessName sql.NullString `db:"business_name"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    sql.NullTime   `db:"updated_at"`
}

// Session is the identity blob stored in redis under the session token.
type Session struct {
	Token        string    `json:"token"`
	UserID       int64     `json:"user_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         string    `json:"role"`
	BusinessName string    `json:"business_name,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (u User) UserType() string {
	if u.Role == RoleOwner {
		return "owner"
	}
	return "customer"
}

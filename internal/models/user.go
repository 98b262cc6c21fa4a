package models

import (
	"database/sql"
	"time"
)

// User represents a user account in the system.
type User struct {
	ID               string         `json:"id"`
	FirstName        string         `json:"firstName"`
	LastName         string         `json:"lastName"`
	Username         string         `json:"username"`
	Email            string         `json:"email"`
	PasswordHash     string         `json:"-"` // Never expose this to the client
	Avatar           sql.NullString `json:"-"`
	ResetToken       sql.NullString `json:"-"`
	ResetTokenExpiry sql.NullTime   `json:"-"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// PublicUser is the subset of User safe to return to clients.
type PublicUser struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Avatar    *string `json:"avatar"`
}

// Public strips the sensitive fields from a User.
func (u User) Public() PublicUser {
	pu := PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
	}
	if u.Avatar.Valid {
		avatar := u.Avatar.String
		pu.Avatar = &avatar
	}
	return pu
}

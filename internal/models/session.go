package models

import "time"

// Session is a denormalized snapshot of a UserAccount plus the login time.
// It is written identically to both persistence scopes; the ephemeral scope
// is authoritative for "is a user logged in here".
type Session struct {
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Level             string    `json:"level"`
	Avatar            string    `json:"avatar"`
	Bio               string    `json:"bio"`
	ProfileBackground string    `json:"profileBackground"`
	LoginTime         time.Time `json:"loginTime"`
}

// SnapshotOf builds a session snapshot from an account record.
func SnapshotOf(a *UserAccount, loginTime time.Time) *Session {
	return &Session{
		Username:          a.Username,
		Email:             a.Email,
		Level:             a.Level,
		Avatar:            a.Avatar,
		Bio:               a.Bio,
		ProfileBackground: a.ProfileBackground,
		LoginTime:         loginTime,
	}
}

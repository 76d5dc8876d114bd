// Package models defines the persisted record types of the omegaboard core:
// accounts, sessions, posts, comments and avatar blobs. JSON field names
// mirror the layout of previously stored data and must not change.
package models

import "time"

// Default style tags for new accounts.
const (
	LevelUser         = "user"
	AvatarDefault     = "default"
	AvatarRobot       = "robot"
	AvatarPixel       = "pixel"
	AvatarCustom      = "custom"
	BackgroundDefault = "default"
)

// UserAccount is the stored account record. Accounts are kept in a single
// username-keyed map; the map key and the Username field must stay equal,
// diverging only inside the rename step.
type UserAccount struct {
	Username          string    `json:"username"`
	PasswordHash      string    `json:"password"`
	Email             string    `json:"email"`
	RegistrationDate  time.Time `json:"registrationDate"`
	Level             string    `json:"level"`
	Avatar            string    `json:"avatar"`
	Bio               string    `json:"bio"`
	ProfileBackground string    `json:"profileBackground"`
}

// ProfilePatch carries a partial account update. Nil fields are left
// untouched; the username and password never change through a patch.
type ProfilePatch struct {
	Email             *string
	Bio               *string
	Avatar            *string
	ProfileBackground *string
}

// Apply copies the non-nil patch fields onto the account.
func (p ProfilePatch) Apply(a *UserAccount) {
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Bio != nil {
		a.Bio = *p.Bio
	}
	if p.Avatar != nil {
		a.Avatar = *p.Avatar
	}
	if p.ProfileBackground != nil {
		a.ProfileBackground = *p.ProfileBackground
	}
}

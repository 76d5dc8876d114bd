// Package common defines shared sentinel errors used across the omegaboard
// core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Registration / profile validation errors.
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUsernameTooShort  = errors.New("username too short")
	ErrPasswordTooShort  = errors.New("password too short")

	// Authentication errors.
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")

	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Content errors.
	ErrEmptyComment = errors.New("comment is empty")
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("post belongs to another user")

	// Avatar upload errors.
	ErrAvatarNotImage = errors.New("avatar is not an image")
	ErrAvatarTooLarge = errors.New("avatar exceeds size limit")
	ErrAvatarNotFound = errors.New("avatar not found")

	// ErrRenamePartiallyApplied marks a username change that re-keyed the
	// account but failed before every dependent write completed. The stores
	// may still reference the old username until the next successful profile
	// save. The underlying cause is attached via %w chaining.
	ErrRenamePartiallyApplied = errors.New("rename partially applied")
)

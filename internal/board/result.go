package board

import (
	"errors"

	"github.com/omegalab/omegaboard/internal/common"
)

// Result is the uniform outcome of every validation-bearing entry point.
// Failures are reported, never raised: the presentation layer only has to
// display Message.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func succeed(message string) Result {
	return Result{Success: true, Message: message}
}

func fail(message string) Result {
	return Result{Success: false, Message: message}
}

// messageFor maps core sentinel errors to the human-readable messages the
// presentation layer displays. The second return reports whether the error
// is a recognized validation outcome; anything else is an internal failure
// that belongs in the log, not in front of the user.
func messageFor(err error) (string, bool) {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		return "A user with this name already exists", true
	case errors.Is(err, common.ErrUsernameTooShort):
		return "Username must contain at least 3 characters", true
	case errors.Is(err, common.ErrPasswordTooShort):
		return "Password must contain at least 6 characters", true
	case errors.Is(err, common.ErrUserNotFound):
		return "User not found", true
	case errors.Is(err, common.ErrWrongPassword):
		return "Wrong password", true
	case errors.Is(err, common.ErrNotAuthenticated):
		return "You need to log in first", true
	case errors.Is(err, common.ErrEmptyComment):
		return "Comment cannot be empty", true
	case errors.Is(err, common.ErrPostNotFound):
		return "Post not found", true
	case errors.Is(err, common.ErrNotPostOwner):
		return "You can only delete your own posts", true
	case errors.Is(err, common.ErrAvatarNotImage):
		return "Please choose an image file", true
	case errors.Is(err, common.ErrAvatarTooLarge):
		return "Image must not exceed 2 MB", true
	case errors.Is(err, common.ErrRenamePartiallyApplied):
		return "Profile was only partially updated, please save it again", true
	default:
		return "Internal error", false
	}
}

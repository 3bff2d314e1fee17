package usecase

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyArtist is informational: the account already owns an artist profile.
	ErrAlreadyArtist = errors.New("already registered as an artist")
	ErrNotArtist     = errors.New("not registered as an artist")
	// ErrProvisioning means a multi-record write was rolled back.
	ErrProvisioning = errors.New("profile provisioning failed")
)

// InvalidLoginMessage is the single message shown for every failed login.
const InvalidLoginMessage = "Please enter a correct username and password."

const (
	msgUsernameTaken = "A user with that username already exists."
	msgInvalidImage  = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	msgFutureBirth   = "Birth date cannot be in the future."
)

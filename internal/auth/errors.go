package auth

import "errors"

var (
	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	// This typically indicates a misconfigured OIDC provider or an incomplete authentication flow.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrInvalidOldPassword is returned when the provided old password does not match the user's current password.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrUserNameOrEmailExists is returned when attempting to create a user with a username or email that already exists.
	ErrUserNameOrEmailExists = errors.New("user with username or email already exists")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidTOTPCode is returned when the user has a second factor enrolled and the
	// provided one-time code is missing or wrong.
	ErrInvalidTOTPCode = errors.New("invalid one-time code")

	// ErrTOTPNotEnrolled is returned when verifying a one-time code for a user without a TOTP secret.
	ErrTOTPNotEnrolled = errors.New("user has no second factor enrolled")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnknownPermissionKey is returned when saving a permission list containing
	// a key the catalog does not define. Unknown strings are rejected at this
	// boundary instead of being persisted and silently ignored later.
	ErrUnknownPermissionKey = errors.New("unknown permission key")
)

// Package login provides the JSON login endpoint.
//
// This file defines exported error values used throughout the login flow.
package login

import "errors"

var (
	// ErrInvalidRequestBody is returned when the login request body cannot
	// be parsed.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrInvalidCredentials is returned when the provided username and/or
	// password are not valid.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidTOTP is returned when a second factor is enrolled and the
	// submitted one-time code is missing or wrong.
	ErrInvalidTOTP = errors.New("invalid one-time code")

	// ErrAccountDisabled is returned when the account exists but has been
	// deactivated by an administrator.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrInternalServerError is returned for unexpected failures during the
	// login process.
	ErrInternalServerError = errors.New("internal server error")
)

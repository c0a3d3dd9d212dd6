// Package errs defines the structured errors the mutation layer returns to the
// dispatch boundary. Every error carries the wire code and message the clients
// already understand; handlers translate codes into HTTP statuses.
package errs

import "errors"

// Wire codes. The numbering is part of the client contract.
const (
	CodeNotAuthenticated = 1001
	CodeLoginFailed      = 1002
	CodeAlreadyExists    = 1003
	CodeNotFound         = 1004
	CodeSaveFile         = 1005
	CodeAlreadyDeleted   = 1006
)

// Error is a structured {code, msg} error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns an Error with the given wire code and message.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	// ErrNotAuthenticated is returned before any mutation body runs when the
	// caller carries no valid identity.
	ErrNotAuthenticated = New(CodeNotAuthenticated, "user is not authenticated")
	// ErrLoginFailed is returned for a bad username/password pair.
	ErrLoginFailed = New(CodeLoginFailed, "incorrect username or password")
	// ErrUsernameExists is returned when account creation hits the unique
	// username constraint.
	ErrUsernameExists = New(CodeAlreadyExists, "username already exist")
	// ErrPhotoNotFound is returned when a referenced photo is absent or not
	// visible to the acting user.
	ErrPhotoNotFound = New(CodeNotFound, "photo not found")
	// ErrSaveFile is returned when blob storage rejects an upload.
	ErrSaveFile = New(CodeSaveFile, "save file failed")
	// ErrAlreadyDeleted is returned when the target of a delete is gone, or
	// exists but is not owned by the acting user.
	ErrAlreadyDeleted = New(CodeAlreadyDeleted, "resource not exist or has already been delete")
)

// CodeOf extracts the wire code from err, or 0 if err is not an errs.Error.
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

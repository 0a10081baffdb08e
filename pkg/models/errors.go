package models

import "errors"

// Common errors for the file service. Stores and services return these
// sentinels so handlers can map them to HTTP responses with errors.Is.
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Auth errors
	ErrNotAuthenticated = errors.New("not authenticated")

	// File errors. ErrFileNotFound deliberately covers both true absence and
	// "exists but not owned by the caller" so responses never leak whether a
	// foreign file exists.
	ErrFileNotFound       = errors.New("file not found")
	ErrParentNotFound     = errors.New("parent not found")
	ErrParentNotFolder    = errors.New("parent is not a folder")
	ErrFolderHasNoContent = errors.New("a folder doesn't have content")
	ErrMimeUnresolved     = errors.New("failed to determine MIME type")

	// Validation errors on file creation
	ErrMissingName = errors.New("missing name")
	ErrMissingType = errors.New("missing type")
	ErrMissingData = errors.New("missing data")

	// Content errors
	ErrContentNotFound = errors.New("content not found")

	// Collaborator errors
	ErrStoreUnavailable = errors.New("store unavailable")
)

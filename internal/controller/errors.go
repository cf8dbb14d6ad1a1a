package controller

import "errors"

var (
	// ErrNotImplemented marks entry points that exist but do nothing yet.
	ErrNotImplemented = errors.New("not implemented")

	ErrSubmitInFlight = errors.New("a create request is already in progress")
	ErrDeleteInFlight = errors.New("a delete request is already in progress")
	ErrMissingLibrary = errors.New("library id is required")
	ErrNoClient       = errors.New("controller has no API client")
	ErrEmptyName      = errors.New("name is empty")
)

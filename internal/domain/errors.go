package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrInvalidOperation indicates the operation is not allowed for the
	// collection in its current state, e.g. explicit membership edits on a
	// smart collection
	ErrInvalidOperation = errors.New("operation not allowed for this collection")

	// ErrInvalidArgument indicates an unrecognized symbolic value was given
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates the requested item does not exist
	ErrNotFound = errors.New("item not found")

	// ErrUnsupportedKind indicates the media subtype maps to none of the
	// supported content kinds (video, audio, photo)
	ErrUnsupportedKind = errors.New("unsupported media kind")

	// ErrServerOffline indicates the media server is unreachable
	ErrServerOffline = errors.New("media server is unreachable")

	// ErrAuthFailed indicates authentication failed
	ErrAuthFailed = errors.New("authentication token is invalid")
)

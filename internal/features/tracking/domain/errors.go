package domain

import "errors"

var (
	// ErrInvalidTrackingNumber is returned when the tracking number is empty or too long.
	ErrInvalidTrackingNumber = errors.New("invalid tracking number")
	// ErrCarrierNotSupported is returned when no adapter is registered for the carrier.
	ErrCarrierNotSupported = errors.New("carrier not supported")
	// ErrAuthFailed is returned when token acquisition against the carrier fails.
	ErrAuthFailed = errors.New("carrier authentication failed")
	// ErrBadAuthResponse is returned when the carrier's auth response lacks a token.
	ErrBadAuthResponse = errors.New("malformed carrier auth response")
	// ErrUpstream is returned when the carrier's tracking endpoint reports a failure.
	ErrUpstream = errors.New("carrier request failed")
	// ErrNotFound is returned when the carrier has no data for the tracking number.
	ErrNotFound = errors.New("tracking number not found")
)

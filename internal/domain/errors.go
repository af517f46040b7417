package domain

import "github.com/cockroachdb/errors"

var (
	// ErrUpstreamUnavailable marks network or HTTP failures of a single source
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrParseFailure marks malformed upstream payloads or markup
	ErrParseFailure = errors.New("parse failure")

	// ErrNotFound is returned when a preference or saved search does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidTimestamp marks a posting date that could not be parsed
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// Upstream marks err as an upstream failure
func Upstream(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrUpstreamUnavailable)
}

// Parse marks err as a parse failure
func Parse(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrParseFailure)
}

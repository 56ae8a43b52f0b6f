package tts

import (
	"errors"
	"fmt"
)

// Kind classifies a synthesis failure so callers can react to the category
// rather than parse error strings.
type Kind string

const (
	// KindConfig means credentials or the endpoint URL are missing. Raised
	// before any network I/O; retrying without a config change cannot help.
	KindConfig Kind = "config"

	// KindTransport means the request never completed at the network level
	// (connect failure, timeout, mid-stream disconnect).
	KindTransport Kind = "transport"

	// KindProvider means the remote answered, but with a non-success status
	// or a body the adapter could not use.
	KindProvider Kind = "provider"
)

// Error is a classified synthesis failure. Status is the HTTP status code
// when the provider answered, 0 otherwise. Reason holds a short description
// or a response-body excerpt for diagnostics.
type Error struct {
	Provider Provider
	Kind     Kind
	Status   int
	Reason   string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %s: %v", e.Provider, e.Kind, e.Reason, e.Err)
	case e.Status > 0:
		return fmt.Sprintf("%s %s: status %d: %s", e.Provider, e.Kind, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// NewConfigError reports missing provider configuration.
func NewConfigError(p Provider, reason string) *Error {
	return &Error{Provider: p, Kind: KindConfig, Reason: reason}
}

// NewTransportError reports a network-level failure.
func NewTransportError(p Provider, reason string, err error) *Error {
	return &Error{Provider: p, Kind: KindTransport, Reason: reason, Err: err}
}

// NewProviderError reports a rejection or an unusable answer from the
// remote. status is 0 when no status code applies.
func NewProviderError(p Provider, status int, reason string) *Error {
	return &Error{Provider: p, Kind: KindProvider, Status: status, Reason: reason}
}

// KindOf returns the classification of err, or "" when err did not come
// from a provider client.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

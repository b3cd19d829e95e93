package domain

import "errors"

var (
	// ErrMalformedCookie means a credential string could not be parsed.
	// Detected at configuration time, before any request is made.
	ErrMalformedCookie = errors.New("malformed cookie")

	// ErrAuth means the remote rejected the configured credentials.
	// Not retryable without re-authentication.
	ErrAuth = errors.New("authentication rejected")

	// ErrTransient covers network failures and 5xx responses. The caller
	// may retry with backoff; no retry policy is embedded here.
	ErrTransient = errors.New("transient error")

	// ErrRateLimited means the remote is throttling requests. Retryable
	// after waiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrSeedNotFound means the tweet a thread reconstruction starts from
	// does not exist or is inaccessible.
	ErrSeedNotFound = errors.New("seed tweet not found")
)

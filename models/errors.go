package models

import "errors"

// Failure taxonomy. Only ErrBrowserLaunch escalates to the job level; every
// other failure is recovered where it happens.
var (
	// ErrBrowserLaunch means the Chrome process itself could not start.
	ErrBrowserLaunch = errors.New("browser launch failed")

	// ErrUpstreamUnavailable means a required credential, URL template or
	// target resolution is missing; the unit short-circuits to an empty
	// result without attempting navigation.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

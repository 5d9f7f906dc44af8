package model

import "errors"

// Error taxonomy of the connector. Callers are expected to match with
// errors.Is; most errors carry additional context via wrapping.
var (
	// ErrUnreachable is a transport-level failure (refused, timeout). No
	// session assumptions are broken by it.
	ErrUnreachable = errors.New("device unreachable")

	// ErrAuthenticationFailed means the device rejected the credentials.
	// Not recoverable without operator intervention.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrSessionLimitReached means the device refused the login because its
	// concurrent session cap is exhausted. Recoverable by waiting.
	ErrSessionLimitReached = errors.New("maximum number of sessions reached")

	// ErrSessionLost means the device evicted the session mid-operation.
	// The next ensure-session call re-authenticates transparently.
	ErrSessionLost = errors.New("session lost")

	// ErrMalformedPage means a page yielded no usable data at all.
	ErrMalformedPage = errors.New("malformed page")

	// ErrUnknownModel means no registered profile matched the device.
	ErrUnknownModel = errors.New("unknown switch model")

	// ErrUnsupportedOperation means the detected model lacks the capability.
	ErrUnsupportedOperation = errors.New("operation not supported by model")

	// ErrCommandNotConfirmed means a control command was sent but the
	// follow-up reads never reflected the requested state. The outcome is
	// indeterminate, not a proven failure.
	ErrCommandNotConfirmed = errors.New("command not confirmed by device")
)

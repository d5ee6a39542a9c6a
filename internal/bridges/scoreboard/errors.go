package scoreboard

import "errors"

// Domain errors for the scoreboard bridge package.
//
// These errors can be checked using errors.Is() in calling code:
//
//	if errors.Is(err, scoreboard.ErrDeviceUnreachable) {
//	    // surface a generic failure to the accessory event
//	}
var (
	// ErrInvalidSyncCode is returned when an 8-letter sync code cannot be
	// decoded into a valid dotted-quad address.
	ErrInvalidSyncCode = errors.New("scoreboard: invalid sync code")

	// ErrDeviceUnreachable is returned on network failure, timeout, or a
	// non-200 status from the device.
	ErrDeviceUnreachable = errors.New("scoreboard: device unreachable")

	// ErrMalformedResponse is returned when the device answers 200 but the
	// body is missing or of unexpected shape for the requested field.
	ErrMalformedResponse = errors.New("scoreboard: malformed device response")
)

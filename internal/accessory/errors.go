package accessory

import "errors"

// Domain errors for the accessory package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, accessory.ErrAccessoryNotFound) {
//	    // handle not found case
//	}
var (
	// ErrAccessoryNotFound is returned when an accessory ID does not exist
	// in the persisted store.
	ErrAccessoryNotFound = errors.New("accessory: not found")

	// ErrAccessoryExists is returned when registering an accessory whose ID
	// already exists.
	ErrAccessoryExists = errors.New("accessory: already exists")

	// ErrInvalidRecord is returned when record validation fails.
	ErrInvalidRecord = errors.New("accessory: invalid record")

	// ErrUnknownInputSource is returned when an input-source identifier is
	// not in the accessory's static source list.
	ErrUnknownInputSource = errors.New("accessory: unknown input source")
)

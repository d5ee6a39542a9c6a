package accessory

import "time"

// Record is the persisted representation of one scoreboard accessory.
//
// A record is either restored (loaded from the store at startup) or newly
// created (created once, registered once). After that the two are treated
// identically: exactly one record exists per distinct resolved address per
// process lifetime.
type Record struct {
	// ID is the deterministic identity derived from Address.
	ID string `json:"id"`

	// Address is the resolved dotted-quad device address.
	Address string `json:"address"`

	// Name is the display name shown in the accessory framework.
	Name string `json:"name"`

	// CreatedAt is when the record was first registered (UTC).
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the record was last written (UTC).
	UpdatedAt time.Time `json:"updated_at"`
}

// InputSource is one static named mode a scoreboard can be switched to.
//
// The list is fixed at accessory construction time and never renumbered at
// runtime.
type InputSource struct {
	// ID is the numeric identifier sent to the device as the sport field.
	ID int `json:"id"`

	// Name is the human-readable source name.
	Name string `json:"name"`
}

// Canonical input-source numbering.
const (
	InputHockey   = 1
	InputBaseball = 2
	InputClock    = 3
)

// DefaultInputSources is the static source list every scoreboard accessory
// is constructed with.
var DefaultInputSources = []InputSource{
	{ID: InputHockey, Name: "Hockey"},
	{ID: InputBaseball, Name: "Baseball"},
	{ID: InputClock, Name: "Clock"},
}

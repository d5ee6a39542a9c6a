// Package scoreboard implements the scoreboard device bridge for ScoreLink.
//
// This package provides connectivity to local scoreboard devices via their
// HTTP control API. It translates between ScoreLink's internal representation
// and the device's three endpoints.
//
// # Architecture
//
// The bridge operates as a translator between the accessory layer and the
// device:
//
//	┌─────────────────┐            ┌─────────────────┐
//	│   Accessory     │   Go API   │ Scoreboard      │   HTTP :5005
//	│   Layer         │◄──────────►│ Bridge (this    │◄──────────► Device
//	│                 │            │ pkg)            │
//	└─────────────────┘            └─────────────────┘
//
// # Key Responsibilities
//
//   - Resolve device tokens (sync codes or literal addresses) to dotted-quad
//     network addresses
//   - Read combined device state (GET /)
//   - Write power and input-source state (POST /setPower, POST /setSport)
//   - Bound every round trip with an explicit timeout
//   - Publish bridge health status over MQTT
//
// # Sync Codes
//
// A sync code is an 8-letter human-shareable token that deterministically
// encodes a 4-octet address. Each consecutive letter pair encodes one octet
// in base 26:
//
//	addr, err := scoreboard.Resolve("ABCDEFGH")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(addr) // "1.55.109.163"
//
// Anything that is not exactly 8 alphabetic characters passes through
// unchanged as a literal address.
//
// # Error Taxonomy
//
// All device failures map onto two sentinels checked with errors.Is:
//
//   - ErrDeviceUnreachable: network failure, timeout, or non-200 status
//   - ErrMalformedResponse: 200 status but missing or unexpected body shape
//
// # Thread Safety
//
// Client holds no mutable state beyond its immutable base address; all
// methods are safe for concurrent use from multiple goroutines.
package scoreboard

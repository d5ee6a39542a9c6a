package scoreboard

import (
	"fmt"
	"strconv"
	"strings"
)

// Sync code format per the sharing scheme: 8 letters, each consecutive pair
// encoding one address octet in base 26.
const (
	// syncCodeLength is the exact length of a sync code.
	syncCodeLength = 8

	// lettersPerOctet is the number of letters encoding one octet.
	lettersPerOctet = 2

	// alphabetSize is the base of the letter-pair encoding.
	alphabetSize = 26

	// maxOctet is the highest valid address octet.
	maxOctet = 255
)

// Resolve decodes a configured device token into a network address.
//
// Tokens that are not exactly 8 alphabetic characters are literal addresses
// and pass through unchanged; no further validation of literals happens here.
// Everything else is treated as a sync code: uppercased, partitioned into 4
// consecutive letter pairs, each pair (c0, c1) decoding to the octet
// (c0-'A')*26 + (c1-'A').
//
// Resolve is a pure function: no I/O, deterministic, safe to call from any
// goroutine.
//
// Parameters:
//   - token: Literal dotted-quad address or 8-letter sync code
//
// Returns:
//   - string: Resolved dotted-quad address
//   - error: ErrInvalidSyncCode if a sync code decodes out of octet range
//
// Example:
//
//	addr, err := Resolve("ABCDEFGH") // "1.55.109.163"
func Resolve(token string) (string, error) {
	if !IsSyncCode(token) {
		return token, nil
	}
	return decodeSyncCode(strings.ToUpper(token))
}

// IsSyncCode reports whether token has the sync code shape: exactly 8
// characters, all in [A-Z] or [a-z]. The check is strict; bytes between
// 'Z' and 'a' are not letters.
func IsSyncCode(token string) bool {
	if len(token) != syncCodeLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// decodeSyncCode converts an uppercased sync code to a dotted-quad address.
// Decoding fails rather than clamping: an out-of-range pair is a resolution
// failure, not a best-effort value.
func decodeSyncCode(code string) (string, error) {
	if len(code)%lettersPerOctet != 0 {
		return "", fmt.Errorf("%w: %q has an odd letter count", ErrInvalidSyncCode, code)
	}

	octets := make([]string, 0, len(code)/lettersPerOctet)
	for i := 0; i < len(code); i += lettersPerOctet {
		pair := code[i : i+lettersPerOctet]
		octet := int(pair[0]-'A')*alphabetSize + int(pair[1]-'A')
		if octet > maxOctet {
			return "", fmt.Errorf("%w: pair %q decodes to %d, octet range is 0-%d",
				ErrInvalidSyncCode, pair, octet, maxOctet)
		}
		octets = append(octets, strconv.Itoa(octet))
	}

	return strings.Join(octets, "."), nil
}

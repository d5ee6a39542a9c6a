package accessory

import "github.com/google/uuid"

// identityNamespace is the fixed UUID v5 namespace for accessory identities.
// Changing it would orphan every persisted record, so it never changes.
var identityNamespace = uuid.MustParse("8f6b5f2c-51d4-4c3e-9b1a-6de4a27c9d11")

// IdentityFunc derives a stable accessory identity from a resolved address.
//
// Host frameworks that supply their own deterministic UUID generator can
// plug it in via Registry.SetIdentityFunc.
type IdentityFunc func(address string) string

// Identity returns the deterministic identity for a resolved address.
//
// The same address always yields the same identity across restarts, and the
// input is the full canonical address string, so two distinct addresses
// cannot collide.
//
// Parameters:
//   - address: Resolved dotted-quad address
//
// Returns:
//   - string: UUID string identity
func Identity(address string) string {
	return uuid.NewSHA1(identityNamespace, []byte(address)).String()
}

// Package randsrc is the randomness provider collaborator: the one
// indirection the cryptographic core needs but does not implement itself.
// It wraps lukechampine.com/frand, a fast userspace CSPRNG.
package randsrc

import "lukechampine.com/frand"

// Reader is the default randomness source, suitable for key generation and
// default Noise/Seed values. It is re-seeded from the operating system's
// entropy source periodically by frand itself; callers never need to seed
// it manually.
var Reader = frand.Reader

// Bytes returns n cryptographically random bytes read from Reader.
func Bytes(n int) []byte {
	return frand.Bytes(n)
}

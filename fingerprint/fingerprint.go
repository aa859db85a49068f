// Package fingerprint computes a content hash of a scenario file, used to
// tag result rows so two runs of the same config can be compared and two
// differently-edited configs never collide under the same scenario name.
// The reference repo pulls in golang.org/x/crypto/sha3 only for test
// fixtures (hashing deterministic addresses); here the same hash promotes
// to a production path.
package fingerprint

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Hash is a hex-encoded SHA3-256 digest.
type Hash string

// Of returns the SHA3-256 digest of data, hex-encoded.
func Of(data []byte) Hash {
	sum := sha3.Sum256(data)
	dst := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(dst, sum[:])
	return Hash(dst)
}

// Package sm3digest exposes the SM3 cryptographic hash (GB/T 32905-2016)
// as a pair of hash and verify helpers.
package sm3digest

import (
	"crypto/subtle"
	"encoding/hex"

	"github.com/tjfoc/gmsm/sm3"
)

// Size is the length of an SM3 digest in bytes.
const Size = 32

// Sum returns the SM3 digest of data.
func Sum(data []byte) []byte {
	h := sm3.New()
	h.Write(data) //nolint:errcheck
	return h.Sum(nil)
}

// Verify reports whether digest is the SM3 digest of data.
// The comparison runs in constant time.
func Verify(data, digest []byte) bool {
	return subtle.ConstantTimeCompare(Sum(data), digest) == 1
}

// SumString returns the lowercase hex SM3 digest of s.
func SumString(s string) string {
	return hex.EncodeToString(Sum([]byte(s)))
}

// VerifyString reports whether hexDigest is the hex SM3 digest of s.
// Upper- and lowercase hex are both accepted.
func VerifyString(s, hexDigest string) bool {
	digest, err := hex.DecodeString(hexDigest)
	if err != nil {
		return false
	}
	return Verify([]byte(s), digest)
}

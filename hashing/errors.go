package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	ok, err := hashing.Verify(password, hash)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // hash string is malformed
//	}
var (
	// ErrInvalidHash is returned when a hash string cannot be parsed: wrong
	// field count, a non-numeric iteration or length field, undecodable
	// base64, or a key length that does not match the decoded key.
	ErrInvalidHash = errors.New("hashing: invalid hash")

	// ErrOperation is returned when the requested cryptographic operation
	// cannot be carried out: an unsupported algorithm tag, derivation
	// parameters rejected by the primitive, or a failing random source.
	ErrOperation = errors.New("hashing: cannot perform operation")

	// ErrInvalidOption is returned by [NewHasher] when an [Options] field
	// falls outside its allowed range.
	ErrInvalidOption = errors.New("hashing: invalid option value")
)

package hashing

import "fmt"

// Verify checks password against an encoded hash produced by
// [Hasher.CreateHash]. The iteration count, salt and key length are read
// from hash itself, so hashes made under older options remain verifiable.
//
// Returns (true, nil) on match and (false, nil) on mismatch. A malformed
// record yields [ErrInvalidHash]; an unsupported algorithm tag or a
// derivation failure yields [ErrOperation].
//
// password is zeroed before Verify returns.
func Verify(password []byte, hash string) (bool, error) {
	defer wipe(password)

	r, err := decodeRecord(hash)
	if err != nil {
		return false, err
	}

	alg, ok := ParseAlgorithm(r.algorithm)
	if !ok {
		return false, fmt.Errorf("%w: unsupported hash type %q", ErrOperation, r.algorithm)
	}

	computed, err := DeriveKey(password, r.salt, r.iterations, len(r.key), alg)
	if err != nil {
		return false, err
	}
	defer wipe(computed)

	return ConstantTimeEqual(r.key, computed), nil
}

// VerifyPassword reports whether password matches hash.
//
// Every error, including a malformed or tampered record, is reported as
// false, so an unauthenticated caller cannot tell a bad hash from a wrong
// password. Use [Verify] to see the error.
func VerifyPassword(password, hash string) bool {
	ok, err := Verify([]byte(password), hash)
	return err == nil && ok
}

// ConstantTimeEqual reports whether a and b hold the same bytes.
//
// The running time depends only on the shorter length: every byte up to it
// is compared, and a length difference is folded into the result rather
// than checked up front.
func ConstantTimeEqual(a, b []byte) bool {
	eq, _ := compareBytes(a, b)
	return eq
}

// compareBytes is ConstantTimeEqual that also reports how many byte pairs
// it scanned.
func compareBytes(a, b []byte) (eq bool, scanned int) {
	diff := len(a) ^ len(b)
	for ; scanned < len(a) && scanned < len(b); scanned++ {
		diff |= int(a[scanned] ^ b[scanned])
	}
	return diff == 0, scanned
}

// wipe zeroes b in place.
func wipe(b []byte) {
	clear(b)
}

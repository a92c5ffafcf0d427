// Package hashing provides salted, iterated password hashing with
// self-describing hash strings.
//
// # Architecture
//
// A [Hasher] draws a random salt, runs a key-derivation function over the
// password and salt, and serialises the algorithm, parameters, salt and
// derived key into one string. [Verify] parses that string, re-runs the same
// derivation and compares the result in constant time.
//
// Three algorithms are recognised:
//
//   - "sha1":   PBKDF2 with HMAC-SHA1
//   - "sha256": PBKDF2 with HMAC-SHA512 (default; also used for unknown names)
//   - "sm3":    iterated SM3 digest over the salt (see [DeriveKey])
//
// # Quick start
//
//	h, err := hashing.NewHasher(hashing.DefaultOptions())
//	if err != nil { log.Fatal(err) }
//
//	hash, _ := h.Make("my-secret-password")
//	ok := hashing.VerifyPassword("my-secret-password", hash) // true
//
// # Hash format
//
//	<algorithm>:<iterations>:<keyLen>:<base64 salt>:<base64 key>
//
// for example
//
//	sha256:18:18:ZmFrZXNhbHRmYWtlc2FsdGZha2VzYWx0:ZmFrZWtleWZha2VrZXlmYWtl
//
// All parameters are self-contained in the string, so no external
// configuration is needed to verify a previously produced hash.
//
// # Errors
//
// [Verify] distinguishes [ErrInvalidHash] (malformed record) from
// [ErrOperation] (unsupported algorithm, rejected parameters).
// [VerifyPassword] collapses both into false so that a tampered record looks
// the same as a wrong password.
//
// # Secrets
//
// [Hasher.CreateHash] and [Verify] take the password as a byte slice and zero
// it before returning. The string helpers copy the password into a
// temporary buffer that is zeroed the same way.
package hashing

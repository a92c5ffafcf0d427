package hashing

import (
	"crypto/sha1" //nolint:gosec
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"

	"github.com/hasbyte1/go-passhash/sm3digest"
)

// DeriveKey runs the KDF selected by alg over (password, salt).
//
// For [AlgorithmSHA1] and [AlgorithmSHA256] the result is keyLen bytes of
// PBKDF2 output. For [AlgorithmSM3] keyLen is ignored and the result is the
// native [sm3digest.Size]-byte digest of the final round.
//
// The same inputs always produce the same key. Invalid parameters and
// unknown algorithms yield [ErrOperation].
func DeriveKey(password, salt []byte, iterations, keyLen int, alg Algorithm) ([]byte, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("%w: invalid key spec: iterations must be ≥ 1, got %d", ErrOperation, iterations)
	}

	switch alg {
	case AlgorithmSHA1:
		return pbkdf2Key(password, salt, iterations, keyLen, sha1.New)
	case AlgorithmSHA256:
		return pbkdf2Key(password, salt, iterations, keyLen, sha512.New)
	case AlgorithmSM3:
		return sm3Key(password, salt, iterations), nil
	default:
		return nil, fmt.Errorf("%w: unsupported hash type %q", ErrOperation, alg)
	}
}

func pbkdf2Key(password, salt []byte, iterations, keyLen int, h func() hash.Hash) ([]byte, error) {
	if keyLen < 1 {
		return nil, fmt.Errorf("%w: invalid key spec: key length must be ≥ 1, got %d", ErrOperation, keyLen)
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, h), nil
}

// sm3Key chains SM3 over the salt: round 0 digests password||salt and every
// later round digests previous||salt. The final digest is the key.
func sm3Key(password, salt []byte, iterations int) []byte {
	var prev []byte
	for i := 0; i < iterations; i++ {
		head := password
		if i > 0 {
			head = prev
		}
		buf := make([]byte, 0, len(head)+len(salt))
		buf = append(buf, head...)
		buf = append(buf, salt...)
		next := sm3digest.Sum(buf)
		wipe(buf)
		wipe(prev)
		prev = next
	}
	return prev
}

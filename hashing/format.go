package hashing

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	fieldSeparator = ":"
	fieldCount     = 5

	algorithmIndex  = 0
	iterationsIndex = 1
	keyLenIndex     = 2
	saltIndex       = 3
	keyIndex        = 4
)

// record holds the values carried by an encoded hash string.
type record struct {
	algorithm  string
	iterations int
	salt       []byte
	key        []byte
}

// encode serialises r as
//
//	<algorithm>:<iterations>:<keyLen>:<salt_base64>:<key_base64>
//
// using standard base64 with padding. The standard alphabet never contains
// ':', so no escaping is needed.
func (r record) encode() string {
	return strings.Join([]string{
		r.algorithm,
		strconv.Itoa(r.iterations),
		strconv.Itoa(len(r.key)),
		base64.StdEncoding.EncodeToString(r.salt),
		base64.StdEncoding.EncodeToString(r.key),
	}, fieldSeparator)
}

// decodeRecord parses an encoded hash string. The algorithm tag is returned
// as-is; callers decide how to treat tags they do not support.
func decodeRecord(encoded string) (*record, error) {
	parts := strings.Split(encoded, fieldSeparator)
	if len(parts) != fieldCount {
		return nil, fmt.Errorf("%w: fields missing: expected %d fields, got %d",
			ErrInvalidHash, fieldCount, len(parts))
	}

	iterations, err := strconv.ParseInt(parts[iterationsIndex], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse iteration count: %v", ErrInvalidHash, err)
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iteration count must be ≥ 1, got %d", ErrInvalidHash, iterations)
	}

	salt, err := base64.StdEncoding.DecodeString(parts[saltIndex])
	if err != nil {
		return nil, fmt.Errorf("%w: base64 decode failed for salt: %v", ErrInvalidHash, err)
	}
	key, err := base64.StdEncoding.DecodeString(parts[keyIndex])
	if err != nil {
		return nil, fmt.Errorf("%w: base64 decode failed for key: %v", ErrInvalidHash, err)
	}

	keyLen, err := strconv.ParseInt(parts[keyLenIndex], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse key length: %v", ErrInvalidHash, err)
	}
	if keyLen != int64(len(key)) {
		return nil, fmt.Errorf("%w: length mismatch: header says %d, key has %d bytes",
			ErrInvalidHash, keyLen, len(key))
	}

	return &record{
		algorithm:  parts[algorithmIndex],
		iterations: int(iterations),
		salt:       salt,
		key:        key,
	}, nil
}

// randomSalt returns n cryptographically random bytes.
func randomSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("%w: failed to generate salt: %v", ErrOperation, err)
	}
	return b, nil
}

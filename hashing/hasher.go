package hashing

import (
	"fmt"
	"strings"

	"github.com/hasbyte1/go-passhash/sm3digest"
)

// Algorithm identifies the key-derivation function recorded in a hash string.
// Using a named string type prevents accidental confusion with plain strings.
type Algorithm string

const (
	// AlgorithmSHA1 selects PBKDF2 with HMAC-SHA1.
	AlgorithmSHA1 Algorithm = "sha1"
	// AlgorithmSHA256 selects PBKDF2 with HMAC-SHA512. The tag predates the
	// switch to SHA-512 and is kept so existing hashes stay verifiable.
	AlgorithmSHA256 Algorithm = "sha256"
	// AlgorithmSM3 selects the iterated SM3 digest construction.
	AlgorithmSM3 Algorithm = "sm3"
)

const (
	// DefaultSaltLen is the default random salt length in bytes.
	DefaultSaltLen uint32 = 24

	// DefaultKeyLen is the default derived key length in bytes for the
	// PBKDF2 algorithms. SM3 always produces [sm3digest.Size] bytes.
	DefaultKeyLen uint32 = 18

	// DefaultIterations is the default number of KDF rounds.
	DefaultIterations uint32 = 18

	// DefaultAlgorithm is used by [Hasher.Make] and as the fallback for
	// unrecognised algorithm names passed to [Hasher.CreateHash].
	DefaultAlgorithm = AlgorithmSHA256
)

// Valid reports whether a is one of the recognised algorithm tags.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmSHA1, AlgorithmSHA256, AlgorithmSM3:
		return true
	default:
		return false
	}
}

// String implements [fmt.Stringer].
func (a Algorithm) String() string { return string(a) }

// Algorithms returns the recognised algorithm tags in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmSHA1, AlgorithmSHA256, AlgorithmSM3}
}

// ParseAlgorithm maps name to an [Algorithm]. The match is exact and
// case-sensitive; the second return value is false for anything else.
func ParseAlgorithm(name string) (Algorithm, bool) {
	a := Algorithm(name)
	if !a.Valid() {
		return "", false
	}
	return a, true
}

// selectAlgorithm applies the hashing fallback: any name that is not a
// recognised tag hashes with [DefaultAlgorithm].
func selectAlgorithm(name string) Algorithm {
	if a, ok := ParseAlgorithm(name); ok {
		return a
	}
	return DefaultAlgorithm
}

// Options configures a [Hasher].
//
// Every parameter is written into the output hash string, so changing them
// only affects newly produced hashes; verification always honours the
// parameters embedded in the record being checked.
type Options struct {
	// Algorithm is the algorithm used by [Hasher.Make].
	// Default: [DefaultAlgorithm] ("sha256").
	Algorithm Algorithm

	// SaltLen is the length of the random salt in bytes.
	// Minimum: 8.  Default: [DefaultSaltLen] (24).
	SaltLen uint32

	// KeyLen is the length of the PBKDF2 derived key in bytes.
	// Minimum: 1.  Default: [DefaultKeyLen] (18).  Ignored for SM3.
	KeyLen uint32

	// Iterations is the number of KDF rounds.
	// Minimum: 1.  Default: [DefaultIterations] (18).
	Iterations uint32
}

// DefaultOptions returns Options with the default parameter set.
func DefaultOptions() Options {
	return Options{
		Algorithm:  DefaultAlgorithm,
		SaltLen:    DefaultSaltLen,
		KeyLen:     DefaultKeyLen,
		Iterations: DefaultIterations,
	}
}

func validateOptions(opts Options) error {
	if !opts.Algorithm.Valid() {
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidOption, opts.Algorithm)
	}
	if opts.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be ≥ 1, got %d", ErrInvalidOption, opts.Iterations)
	}
	if opts.KeyLen < 1 {
		return fmt.Errorf("%w: key_len must be ≥ 1, got %d", ErrInvalidOption, opts.KeyLen)
	}
	if opts.SaltLen < 8 {
		return fmt.Errorf("%w: salt_len must be ≥ 8, got %d", ErrInvalidOption, opts.SaltLen)
	}
	return nil
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Algorithm is the KDF that produced the hash.
	Algorithm Algorithm
	// Iterations is the number of KDF rounds.
	Iterations int
	// KeyLen is the derived key length in bytes.
	KeyLen int
	// SaltLen is the decoded salt length in bytes.
	SaltLen int
}

// DetectAlgorithm inspects a hash string and returns the [Algorithm] named in
// its first field. It does not validate the rest of the record.
//
// The second return value is false when the tag is not recognised.
func DetectAlgorithm(hash string) (Algorithm, bool) {
	tag, _, found := strings.Cut(hash, fieldSeparator)
	if !found {
		return "", false
	}
	return ParseAlgorithm(tag)
}

// Hasher produces and checks salted, iterated password hashes.
//
// Output format:
//
//	<algorithm>:<iterations>:<keyLen>:<base64 salt>:<base64 key>
//
// # Thread safety
//
// Hasher is immutable after construction and safe for concurrent use.
type Hasher struct {
	opts Options
}

// NewHasher constructs a Hasher with the given options.
// Use [DefaultOptions] for the default parameter set.
func NewHasher(opts Options) (*Hasher, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return &Hasher{opts: opts}, nil
}

// Options returns the current parameter set.
func (h *Hasher) Options() Options { return h.opts }

// CreateHash derives a key from password with the named algorithm and a
// fresh random salt, and returns the encoded record.
//
// "sha1" and "sm3" select their algorithms; "sha256" and every unrecognised
// name select PBKDF2-HMAC-SHA512 and are recorded as "sha256".
//
// password is zeroed before CreateHash returns, whether or not it succeeds.
func (h *Hasher) CreateHash(password []byte, algorithm string) (string, error) {
	defer wipe(password)

	alg := selectAlgorithm(algorithm)
	salt, err := randomSalt(h.opts.SaltLen)
	if err != nil {
		return "", err
	}
	key, err := DeriveKey(password, salt, int(h.opts.Iterations), int(h.opts.KeyLen), alg)
	if err != nil {
		return "", err
	}
	r := record{
		algorithm:  string(alg),
		iterations: int(h.opts.Iterations),
		salt:       salt,
		key:        key,
	}
	return r.encode(), nil
}

// Make hashes password with the configured [Options.Algorithm].
func (h *Hasher) Make(password string) (string, error) {
	return h.CreateHash([]byte(password), string(h.opts.Algorithm))
}

// MakeWith hashes password with the named algorithm. See [Hasher.CreateHash]
// for the fallback applied to unrecognised names.
func (h *Hasher) MakeWith(password, algorithm string) (string, error) {
	return h.CreateHash([]byte(password), algorithm)
}

// Check verifies that password matches hash.
// Returns (true, nil) on match, (false, nil) on mismatch, or (false, err)
// if the hash is malformed or names an unsupported algorithm.
func (h *Hasher) Check(password, hash string) (bool, error) {
	return Verify([]byte(password), hash)
}

// NeedsRehash returns true when the algorithm, iteration count, salt length
// or key length stored in hash differ from the hasher's configuration.
// Callers should re-hash the password on the next successful login.
func (h *Hasher) NeedsRehash(hash string) (bool, error) {
	info, err := h.Info(hash)
	if err != nil {
		return false, err
	}
	return info.Algorithm != h.opts.Algorithm ||
		info.Iterations != int(h.opts.Iterations) ||
		info.SaltLen != int(h.opts.SaltLen) ||
		info.KeyLen != h.keyLen(info.Algorithm), nil
}

// Info parses hash and returns the encoded parameters without verifying it.
func (h *Hasher) Info(hash string) (HashInfo, error) {
	return ParseInfo(hash)
}

// keyLen is the derived key length the hasher would record for alg.
func (h *Hasher) keyLen(alg Algorithm) int {
	if alg == AlgorithmSM3 {
		return sm3digest.Size
	}
	return int(h.opts.KeyLen)
}

// ParseInfo parses hash and returns the encoded parameters without
// verifying it. A record naming an unknown algorithm yields [ErrOperation].
func ParseInfo(hash string) (HashInfo, error) {
	r, err := decodeRecord(hash)
	if err != nil {
		return HashInfo{}, err
	}
	alg, ok := ParseAlgorithm(r.algorithm)
	if !ok {
		return HashInfo{}, fmt.Errorf("%w: unsupported hash type %q", ErrOperation, r.algorithm)
	}
	return HashInfo{
		Algorithm:  alg,
		Iterations: r.iterations,
		KeyLen:     len(r.key),
		SaltLen:    len(r.salt),
	}, nil
}

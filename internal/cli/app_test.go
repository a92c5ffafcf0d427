package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-passhash/hashing"
)

type testApp struct {
	*App

	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestApp returns an App reading stdin from the given string and never
// treating it as a terminal.
func newTestApp(t *testing.T, stdin string) *testApp {
	t.Helper()

	var stdout, stderr bytes.Buffer

	app := NewApp()
	app.stdin = strings.NewReader(stdin)
	app.stdout = &stdout
	app.stderr = &stderr
	app.isTerminal = func() bool { return false }
	app.readPassword = func() ([]byte, error) {
		t.Fatal("unexpected password prompt")
		return nil, nil
	}
	app.exit = func(int) {}

	return &testApp{App: app, stdout: &stdout, stderr: &stderr}
}

// fastEnv configures cheap hashing parameters through the environment.
func fastEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PASSHASH_ITERATIONS", "2")
	t.Setenv("PASSHASH_SALT_LEN", "8")
}

func runHash(t *testing.T, args ...string) string {
	t.Helper()

	a := newTestApp(t, "")
	require.NoError(t, a.Run(append([]string{"hash"}, args...)))

	return strings.TrimSpace(a.stdout.String())
}

func TestHashThenVerify(t *testing.T) {
	fastEnv(t)

	for _, alg := range []string{"sha1", "sha256", "sm3"} {
		t.Run(alg, func(t *testing.T) {
			encoded := runHash(t, "--password=hunter2", "--algorithm="+alg)
			require.True(t, strings.HasPrefix(encoded, alg+":2:"), encoded)

			a := newTestApp(t, "")
			require.NoError(t, a.Run([]string{"--password=hunter2", "verify", "--hash", encoded}))
			require.Equal(t, "OK\n", a.stdout.String())

			a = newTestApp(t, "")
			err := a.Run([]string{"--password=hunter3", "verify", "--hash", encoded})
			require.ErrorIs(t, err, ErrMismatch)
			require.Equal(t, "MISMATCH\n", a.stdout.String())
		})
	}
}

func TestHash_PasswordFromStdin(t *testing.T) {
	fastEnv(t)

	a := newTestApp(t, "from-stdin\r\n")
	require.NoError(t, a.Run([]string{"hash"}))
	encoded := strings.TrimSpace(a.stdout.String())

	require.True(t, hashing.VerifyPassword("from-stdin", encoded))
}

func TestHash_EmptyStdin(t *testing.T) {
	fastEnv(t)

	a := newTestApp(t, "")
	require.Error(t, a.Run([]string{"hash"}))
}

func TestHash_PromptsTwiceOnTerminal(t *testing.T) {
	fastEnv(t)

	a := newTestApp(t, "")
	a.isTerminal = func() bool { return true }

	answers := [][]byte{[]byte("one"), []byte("two"), []byte("typed"), []byte("typed")}
	a.readPassword = func() ([]byte, error) {
		next := answers[0]
		answers = answers[1:]
		return next, nil
	}

	require.NoError(t, a.Run([]string{"hash"}))
	require.Empty(t, answers)
	require.Contains(t, a.stderr.String(), "Passwords don't match!")
	require.True(t, hashing.VerifyPassword("typed", strings.TrimSpace(a.stdout.String())))
}

func TestHash_DefaultOptions(t *testing.T) {
	encoded := runHash(t, "--password=hunter2")

	info, err := hashing.ParseInfo(encoded)
	require.NoError(t, err)
	require.Equal(t, hashing.HashInfo{
		Algorithm:  hashing.AlgorithmSHA256,
		Iterations: 18,
		KeyLen:     18,
		SaltLen:    24,
	}, info)
}

func TestHash_UnknownAlgorithmFallsBack(t *testing.T) {
	fastEnv(t)

	encoded := runHash(t, "--password=pw", "--algorithm=md5")
	require.True(t, strings.HasPrefix(encoded, "sha256:"), encoded)
}

func TestHash_ConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "passhash.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("algorithm: sha1\niterations: 3\nsalt_len: 12\nkey_len: 20\n"), 0o600))

	encoded := runHash(t, "--config", cfg, "--password=pw")

	info, err := hashing.ParseInfo(encoded)
	require.NoError(t, err)
	require.Equal(t, hashing.HashInfo{
		Algorithm:  hashing.AlgorithmSHA1,
		Iterations: 3,
		KeyLen:     20,
		SaltLen:    12,
	}, info)
}

func TestHash_EnvironmentOverridesConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "passhash.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"iterations": 3, "salt_len": 8}`), 0o600))
	t.Setenv("PASSHASH_ITERATIONS", "4")

	encoded := runHash(t, "--config", cfg, "--password=pw")
	require.True(t, strings.HasPrefix(encoded, "sha256:4:"), encoded)
}

func TestHash_InvalidOptions(t *testing.T) {
	t.Setenv("PASSHASH_ITERATIONS", "0")

	a := newTestApp(t, "")
	err := a.Run([]string{"--password=pw", "hash"})
	require.ErrorIs(t, err, hashing.ErrInvalidOption)
}

func TestHash_MissingConfigFile(t *testing.T) {
	a := newTestApp(t, "")
	err := a.Run([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "--password=pw", "hash"})
	require.Error(t, err)
}

func TestVerify_MalformedRecord(t *testing.T) {
	a := newTestApp(t, "")
	err := a.Run([]string{"--password=pw", "verify", "--hash", "onlytwo:fields"})
	require.ErrorIs(t, err, ErrMismatch)
	require.Equal(t, "MISMATCH\n", a.stdout.String())

	a = newTestApp(t, "")
	err = a.Run([]string{"--password=pw", "verify", "--strict", "--hash", "onlytwo:fields"})
	require.ErrorIs(t, err, hashing.ErrInvalidHash)
	require.False(t, errors.Is(err, ErrMismatch))
}

func TestVerify_StrictUnsupportedAlgorithm(t *testing.T) {
	a := newTestApp(t, "")
	err := a.Run([]string{"--password=pw", "verify", "--strict", "--hash", "md5:1:4:AAAAAAAAAAA=:AAAAAA=="})
	require.ErrorIs(t, err, hashing.ErrOperation)
}

func TestVerify_DebugLogging(t *testing.T) {
	a := newTestApp(t, "")
	err := a.Run([]string{"--log-level=debug", "--password=pw", "verify", "--hash", "onlytwo:fields"})
	require.ErrorIs(t, err, ErrMismatch)
	require.Contains(t, a.stderr.String(), "verification failed")
}

func TestVerify_RequiresHash(t *testing.T) {
	a := newTestApp(t, "")
	require.Error(t, a.Run([]string{"--password=pw", "verify"}))
}

func TestInfo(t *testing.T) {
	fastEnv(t)

	encoded := runHash(t, "--password=pw", "--algorithm=sm3")

	a := newTestApp(t, "")
	require.NoError(t, a.Run([]string{"info", "--hash", encoded}))

	out := a.stdout.String()
	require.Contains(t, out, "Algorithm:  sm3\n")
	require.Contains(t, out, "Iterations: 2\n")
	require.Contains(t, out, "Key length: 32 bytes\n")
	require.Contains(t, out, "Salt:       8 bytes\n")

	a = newTestApp(t, "")
	require.ErrorIs(t, a.Run([]string{"info", "--hash", "bogus"}), hashing.ErrInvalidHash)
}

func TestNeedsRehash(t *testing.T) {
	fastEnv(t)

	encoded := runHash(t, "--password=pw")

	a := newTestApp(t, "")
	require.NoError(t, a.Run([]string{"needs-rehash", "--hash", encoded}))
	require.Equal(t, "false\n", a.stdout.String())

	t.Setenv("PASSHASH_ITERATIONS", "3")

	a = newTestApp(t, "")
	require.NoError(t, a.Run([]string{"needs-rehash", "--hash", encoded}))
	require.Equal(t, "true\n", a.stdout.String())
}

func TestBenchmark(t *testing.T) {
	fastEnv(t)

	a := newTestApp(t, "")
	require.NoError(t, a.Run([]string{"benchmark", "--repeat=4", "--parallel=2"}))

	out := a.stdout.String()
	for _, alg := range []string{"sha1", "sha256", "sm3"} {
		require.Contains(t, out, alg)
	}
	require.Contains(t, a.stderr.String(), "Benchmarking sm3")
}

func TestBenchmark_SelectedAlgorithm(t *testing.T) {
	fastEnv(t)

	a := newTestApp(t, "")
	require.NoError(t, a.Run([]string{"bench", "--algorithm=sm3", "--repeat=2"}))

	out := a.stdout.String()
	require.Contains(t, out, "sm3")
	require.NotContains(t, out, "sha1")
}

func TestBenchmark_InvalidArguments(t *testing.T) {
	a := newTestApp(t, "")
	require.Error(t, a.Run([]string{"benchmark", "--repeat=0"}))
}

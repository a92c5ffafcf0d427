// Package cli implements the passhash command-line tool.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/hasbyte1/go-passhash/hashing"
)

// ErrMismatch is returned by the verify command when the password does not
// match the hash. The command has already reported the result on stdout.
var ErrMismatch = errors.New("password does not match")

// App holds the state shared by all passhash commands.
type App struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	isTerminal   func() bool
	readPassword func() ([]byte, error)
	exit         func(int)

	configFile string
	logLevel   string
	password   string

	opts hashing.Options
	log  *zap.SugaredLogger

	hash        commandHash
	verify      commandVerify
	info        commandInfo
	needsRehash commandNeedsRehash
	benchmark   commandBenchmark
}

// NewApp returns an App bound to the process's standard streams.
func NewApp() *App {
	return &App{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		readPassword: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
		exit: os.Exit,
		log:  zap.NewNop().Sugar(),
	}
}

// Run parses args and executes the selected command.
func (c *App) Run(args []string) error {
	app := kingpin.New("passhash", "Create and verify salted, iterated password hashes.")
	app.UsageWriter(c.stdout)
	app.ErrorWriter(c.stderr)
	app.Terminate(c.exit)

	app.Flag("config", "Configuration file (yaml, json or toml) with hashing options").
		Envar("PASSHASH_CONFIG").StringVar(&c.configFile)
	app.Flag("log-level", "Log level").Default("info").
		EnumVar(&c.logLevel, "debug", "info", "warn", "error")
	app.Flag("password", "Password to hash or verify (prompted for when omitted)").
		Envar("PASSHASH_PASSWORD").StringVar(&c.password)

	app.PreAction(c.initialize)

	c.hash.setup(c, app)
	c.verify.setup(c, app)
	c.info.setup(c, app)
	c.needsRehash.setup(c, app)
	c.benchmark.setup(c, app)

	defer func() {
		c.log.Sync() //nolint:errcheck
	}()

	_, err := app.Parse(args)
	return err
}

func (c *App) initialize(*kingpin.ParseContext) error {
	log, err := newLogger(c.logLevel, c.stderr)
	if err != nil {
		return err
	}
	c.log = log

	opts, err := loadOptions(c.configFile)
	if err != nil {
		return err
	}
	c.opts = opts
	c.log.Debugw("loaded hashing options",
		"config", c.configFile,
		"algorithm", opts.Algorithm,
		"iterations", opts.Iterations,
		"saltLen", opts.SaltLen,
		"keyLen", opts.KeyLen)

	return nil
}

func (c *App) hasher() (*hashing.Hasher, error) {
	h, err := hashing.NewHasher(c.opts)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hashing options")
	}
	return h, nil
}

func (c *App) printStdout(msg string, args ...any) {
	fmt.Fprintf(c.stdout, msg, args...) //nolint:errcheck
}

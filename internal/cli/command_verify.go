package cli

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"

	"github.com/hasbyte1/go-passhash/hashing"
)

type commandVerify struct {
	hash   string
	strict bool

	app *App
}

func (c *commandVerify) setup(app *App, parent *kingpin.Application) {
	cmd := parent.Command("verify", "Check a password against an encoded record")
	cmd.Flag("hash", "Encoded record to check against").Required().StringVar(&c.hash)
	cmd.Flag("strict", "Fail on malformed records instead of reporting a mismatch").BoolVar(&c.strict)
	cmd.Action(c.run)
	c.app = app
}

func (c *commandVerify) run(*kingpin.ParseContext) error {
	password, err := c.app.getPassword(false)
	if err != nil {
		return err
	}

	ok, err := hashing.Verify(password, c.hash)
	if err != nil {
		if c.strict {
			return errors.Wrap(err, "unable to verify password")
		}

		c.app.log.Debugw("verification failed", "err", err)
	}

	if !ok {
		c.app.printStdout("MISMATCH\n")
		return ErrMismatch
	}

	c.app.printStdout("OK\n")

	return nil
}

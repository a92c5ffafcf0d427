package cli

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"

	"github.com/hasbyte1/go-passhash/hashing"
)

type commandInfo struct {
	hash string

	app *App
}

func (c *commandInfo) setup(app *App, parent *kingpin.Application) {
	cmd := parent.Command("info", "Show the parameters stored in an encoded record")
	cmd.Flag("hash", "Encoded record").Required().StringVar(&c.hash)
	cmd.Action(c.run)
	c.app = app
}

func (c *commandInfo) run(*kingpin.ParseContext) error {
	info, err := hashing.ParseInfo(c.hash)
	if err != nil {
		return errors.Wrap(err, "unable to parse hash")
	}

	c.app.printStdout("Algorithm:  %v\n", info.Algorithm)
	c.app.printStdout("Iterations: %v\n", info.Iterations)
	c.app.printStdout("Key length: %v bytes\n", info.KeyLen)
	c.app.printStdout("Salt:       %v bytes\n", info.SaltLen)

	return nil
}

type commandNeedsRehash struct {
	hash string

	app *App
}

func (c *commandNeedsRehash) setup(app *App, parent *kingpin.Application) {
	cmd := parent.Command("needs-rehash", "Report whether a record was made with different options than the configured ones")
	cmd.Flag("hash", "Encoded record").Required().StringVar(&c.hash)
	cmd.Action(c.run)
	c.app = app
}

func (c *commandNeedsRehash) run(*kingpin.ParseContext) error {
	h, err := c.app.hasher()
	if err != nil {
		return err
	}

	needs, err := h.NeedsRehash(c.hash)
	if err != nil {
		return errors.Wrap(err, "unable to inspect hash")
	}

	c.app.printStdout("%v\n", needs)

	return nil
}

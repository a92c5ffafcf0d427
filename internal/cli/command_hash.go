package cli

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"
)

type commandHash struct {
	algorithm string

	app *App
}

func (c *commandHash) setup(app *App, parent *kingpin.Application) {
	cmd := parent.Command("hash", "Hash a password and print the encoded record")
	cmd.Flag("algorithm", "Algorithm to use (sha1, sha256, sm3); defaults to the configured algorithm").
		Short('a').StringVar(&c.algorithm)
	cmd.Action(c.run)
	c.app = app
}

func (c *commandHash) run(*kingpin.ParseContext) error {
	h, err := c.app.hasher()
	if err != nil {
		return err
	}

	algorithm := c.algorithm
	if algorithm == "" {
		algorithm = string(h.Options().Algorithm)
	}

	password, err := c.app.getPassword(true)
	if err != nil {
		return err
	}

	encoded, err := h.CreateHash(password, algorithm)
	if err != nil {
		return errors.Wrap(err, "unable to hash password")
	}

	c.app.log.Debugw("hashed password", "algorithm", algorithm, "iterations", h.Options().Iterations)
	c.app.printStdout("%s\n", encoded)

	return nil
}

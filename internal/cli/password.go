package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// getPassword returns the password from --password / PASSHASH_PASSWORD, the
// first line of piped stdin, or an interactive prompt, in that order. The
// caller owns the returned buffer.
func (c *App) getPassword(confirm bool) ([]byte, error) {
	switch {
	case c.password != "":
		return []byte(c.password), nil
	case !c.isTerminal():
		return readPasswordLine(c.stdin)
	case confirm:
		return c.askForNewPassword()
	default:
		return c.askPass("Enter password: ")
	}
}

func (c *App) askForNewPassword() ([]byte, error) {
	for {
		p1, err := c.askPass("Enter password to hash: ")
		if err != nil {
			return nil, errors.Wrap(err, "password entry")
		}

		p2, err := c.askPass("Re-enter password for verification: ")
		if err != nil {
			clear(p1)
			return nil, errors.Wrap(err, "password verification")
		}

		match := bytes.Equal(p1, p2)
		clear(p2)

		if match {
			return p1, nil
		}

		clear(p1)
		fmt.Fprintln(c.stderr, "Passwords don't match!") //nolint:errcheck
	}
}

// askPass presents a given prompt and asks the user for password.
func (c *App) askPass(prompt string) ([]byte, error) {
	for i := 0; i < 5; i++ {
		fmt.Fprint(c.stderr, prompt) //nolint:errcheck

		pass, err := c.readPassword()
		if err != nil {
			return nil, errors.Wrap(err, "password prompt error")
		}

		fmt.Fprintln(c.stderr) //nolint:errcheck

		if len(pass) == 0 {
			continue
		}

		return pass, nil
	}

	return nil, errors.New("can't get password")
}

// readPasswordLine reads a single line from r, without its line ending.
func readPasswordLine(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "unable to read password from stdin")
	}

	line = bytes.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return nil, errors.New("no password provided on stdin")
	}

	return line, nil
}

package mochizuki

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoParams is returned by ParseParams when a line consists of a bare
// command with nothing after it. Handlers that need parameters treat it as a
// protocol error.
var ErrNoParams = errors.New("message has no parameters")

// ParseCommand returns the command token of a client message: everything up
// to the first space, or the whole line if it contains none.
func ParseCommand(line string) string {
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[:i]
	}
	return line
}

// ParseParams returns the parameter text of a client message: everything
// after the first space.
func ParseParams(line string) (string, error) {
	i := strings.IndexByte(line, ' ')
	if i < 0 {
		return "", ErrNoParams
	}
	return line[i+1:], nil
}

// FormatHostmask formats a nick!user@host prefix.
func FormatHostmask(nick, user, host string) string {
	return fmt.Sprintf("%s!%s@%s", nick, user, host)
}

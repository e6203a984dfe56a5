//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// readLineNoEcho disables terminal echo for one line. It fails with
// errNotTerminal when stdin is a pipe or a regular file.
func readLineNoEcho(stdin *os.File) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}

	fd := int(stdin.Fd())
	termios, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return "", errNotTerminal
	}
	original := *termios
	silent := original
	silent.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &silent); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, termiosWriteRequest, &original)
	}()

	return readLine(stdin)
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errNotTerminal = errors.New("stdin is not a terminal")

// PromptPIN asks for a PIN without echoing it. Piped input is read as a
// plain line so scripts can still feed the value.
func PromptPIN(stdin *os.File, out io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(out, "%s: ", label); err != nil {
		return "", err
	}

	value, err := readLineNoEcho(stdin)
	if errors.Is(err, errNotTerminal) {
		value, err = readLine(stdin)
	}
	_, _ = fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read pin: %w", err)
	}
	return strings.TrimSpace(value), nil
}

// PromptNewPIN asks twice and requires both entries to match.
func PromptNewPIN(stdin *os.File, out io.Writer) (string, error) {
	first, err := PromptPIN(stdin, out, "New PIN")
	if err != nil {
		return "", err
	}
	second, err := PromptPIN(stdin, out, "Repeat PIN")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("pins do not match")
	}
	return first, nil
}

// readLine reads byte by byte so nothing past the newline is consumed from stdin.
func readLine(reader io.Reader) (string, error) {
	var line strings.Builder
	buffer := make([]byte, 1)
	for {
		n, err := reader.Read(buffer)
		if n > 0 {
			if buffer[0] == '\n' {
				break
			}
			line.WriteByte(buffer[0])
		}
		if errors.Is(err, io.EOF) {
			if line.Len() == 0 {
				return "", io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(line.String(), "\r"), nil
}

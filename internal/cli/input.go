package cli

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// readPasswordFn is a seam so tests can feed passwords without a TTY.
var readPasswordFn = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// prompt prints a label and reads one trimmed line.
func (a *App) prompt(label string) (string, error) {
	printlnFn(label)
	line, err := a.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword prints a label and reads a password without echo.
func (a *App) promptPassword(label string) (string, error) {
	printlnFn(label)
	b, err := readPasswordFn()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

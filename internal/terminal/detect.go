// Package terminal decides whether the CLI may prompt.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// fder is satisfied by *os.File.
type fder interface {
	Fd() uintptr
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return Streams(os.Stdin, os.Stdout)
}

// Streams reports whether in and out are both terminals. Streams that are not
// backed by a file descriptor, such as buffers in tests, are never terminals.
func Streams(in any, out any) bool {
	return isTerminal(in) && isTerminal(out)
}

func isTerminal(stream any) bool {
	f, ok := stream.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

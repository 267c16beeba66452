package tui

import "golang.org/x/term"

// IsTTY reports whether fd refers to a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

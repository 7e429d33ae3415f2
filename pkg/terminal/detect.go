// Package terminal identifies the terminal emulator and what it can draw:
// inline image protocol, colour profile, interactivity and cell geometry.
// Detection reads environment variables only and performs no I/O.
package terminal

import (
	"os"
	"strings"
)

// Terminal identifies the emulator in use.
type Terminal int

const (
	TermGeneric Terminal = iota
	TermGhostty
	TermKitty
	TermWezTerm
	TermITerm2
	TermVSCode
	TermAlacritty
	TermVTE
	TermTmux
	TermScreen
)

var terminalNames = [...]string{
	TermGeneric:   "generic",
	TermGhostty:   "ghostty",
	TermKitty:     "kitty",
	TermWezTerm:   "wezterm",
	TermITerm2:    "iterm2",
	TermVSCode:    "vscode",
	TermAlacritty: "alacritty",
	TermVTE:       "vte",
	TermTmux:      "tmux",
	TermScreen:    "screen",
}

func (t Terminal) String() string {
	if t >= 0 && int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return "unknown"
}

// Env looks up an environment variable. os.Getenv satisfies it.
type Env func(string) string

// Detect identifies the terminal from the process environment.
func Detect() Terminal {
	return DetectEnv(os.Getenv)
}

// DetectEnv identifies the terminal from env. Signals are checked from most
// to least specific: TERM_PROGRAM, TERM, emulator-private variables, then
// multiplexers.
func DetectEnv(env Env) Terminal {
	switch strings.ToLower(env("TERM_PROGRAM")) {
	case "ghostty":
		return TermGhostty
	case "kitty":
		return TermKitty
	case "wezterm":
		return TermWezTerm
	case "iterm.app":
		return TermITerm2
	case "vscode":
		return TermVSCode
	case "alacritty":
		return TermAlacritty
	case "tmux":
		return TermTmux
	}

	switch term := env("TERM"); {
	case term == "xterm-ghostty":
		return TermGhostty
	case term == "xterm-kitty":
		return TermKitty
	case strings.HasPrefix(term, "alacritty"):
		return TermAlacritty
	}

	switch {
	case env("KITTY_WINDOW_ID") != "":
		return TermKitty
	case env("ITERM_SESSION_ID") != "", env("LC_TERMINAL") == "iTerm2":
		return TermITerm2
	case env("WEZTERM_EXECUTABLE") != "":
		return TermWezTerm
	case env("VTE_VERSION") != "":
		return TermVTE
	case env("TMUX") != "":
		return TermTmux
	case env("STY") != "":
		return TermScreen
	}
	return TermGeneric
}

// IsSSH reports whether env describes an SSH session.
func IsSSH(env Env) bool {
	return env("SSH_TTY") != "" || env("SSH_CONNECTION") != "" || env("SSH_CLIENT") != ""
}

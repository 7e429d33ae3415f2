package terminal

import (
	"testing"

	"github.com/muesli/termenv"
)

func envMap(kv map[string]string) Env {
	return func(k string) string { return kv[k] }
}

func TestDetectEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Terminal
	}{
		{"empty", nil, TermGeneric},
		{"ghostty program", map[string]string{"TERM_PROGRAM": "ghostty"}, TermGhostty},
		{"ghostty term", map[string]string{"TERM": "xterm-ghostty"}, TermGhostty},
		{"kitty term", map[string]string{"TERM": "xterm-kitty"}, TermKitty},
		{"kitty window", map[string]string{"KITTY_WINDOW_ID": "1"}, TermKitty},
		{"iterm", map[string]string{"TERM_PROGRAM": "iTerm.app"}, TermITerm2},
		{"iterm over ssh", map[string]string{"LC_TERMINAL": "iTerm2"}, TermITerm2},
		{"wezterm", map[string]string{"WEZTERM_EXECUTABLE": "/usr/bin/wezterm"}, TermWezTerm},
		{"vscode", map[string]string{"TERM_PROGRAM": "vscode"}, TermVSCode},
		{"alacritty", map[string]string{"TERM": "alacritty"}, TermAlacritty},
		{"vte", map[string]string{"VTE_VERSION": "7600"}, TermVTE},
		{"tmux", map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0"}, TermTmux},
		{"screen", map[string]string{"STY": "1234.pts-0"}, TermScreen},
		{"program wins over tmux", map[string]string{"TERM_PROGRAM": "kitty", "TMUX": "x"}, TermKitty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectEnv(envMap(tt.env)); got != tt.want {
				t.Errorf("DetectEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTerminalString(t *testing.T) {
	if TermGhostty.String() != "ghostty" {
		t.Errorf("String() = %q", TermGhostty.String())
	}
	if Terminal(99).String() != "unknown" {
		t.Errorf("out of range String() = %q", Terminal(99).String())
	}
}

func TestIsSSH(t *testing.T) {
	if IsSSH(envMap(nil)) {
		t.Error("empty env reported SSH")
	}
	if !IsSSH(envMap(map[string]string{"SSH_CONNECTION": "1.2.3.4 22 5.6.7.8 22"})) {
		t.Error("SSH_CONNECTION not detected")
	}
}

func TestSelectProtocol(t *testing.T) {
	tests := []struct {
		term Terminal
		ssh  bool
		want Protocol
	}{
		{TermKitty, false, ProtocolKitty},
		{TermGhostty, false, ProtocolKitty},
		{TermWezTerm, false, ProtocolKitty},
		{TermITerm2, false, ProtocolITerm2},
		{TermGeneric, false, ProtocolHalfblocks},
		{TermKitty, true, ProtocolHalfblocks},
	}
	for _, tt := range tests {
		if got := SelectProtocol(tt.term, tt.ssh); got != tt.want {
			t.Errorf("SelectProtocol(%v, %v) = %v, want %v", tt.term, tt.ssh, got, tt.want)
		}
	}
}

func TestResolveProtocol(t *testing.T) {
	tests := []struct {
		override string
		want     Protocol
	}{
		{"", ProtocolKitty},
		{"auto", ProtocolKitty},
		{"sixel", ProtocolSixel},
		{"HALFBLOCKS", ProtocolHalfblocks},
		{"none", ProtocolNone},
		{"bogus", ProtocolKitty},
	}
	for _, tt := range tests {
		if got := ResolveProtocol(TermKitty, false, tt.override); got != tt.want {
			t.Errorf("ResolveProtocol(%q) = %v, want %v", tt.override, got, tt.want)
		}
	}
}

func TestParseProtocol(t *testing.T) {
	for _, name := range []string{"halfblocks", "kitty", "iterm2", "sixel", "none"} {
		p, err := ParseProtocol(name)
		if err != nil {
			t.Errorf("ParseProtocol(%q): %v", name, err)
			continue
		}
		if p.String() != name {
			t.Errorf("round trip %q -> %q", name, p.String())
		}
	}
	if _, err := ParseProtocol("auto"); err == nil {
		t.Error("auto should not parse as a protocol")
	}
}

func TestSizeOfFallsBackToEnv(t *testing.T) {
	t.Setenv("COLUMNS", "132")
	t.Setenv("LINES", "")
	// An invalid descriptor never answers the size query.
	s := SizeOf(^uintptr(0))
	if s.Cols != 132 || s.Rows != fallbackRows {
		t.Errorf("SizeOf = %+v, want 132x%d", s, fallbackRows)
	}
}

func TestCapabilitiesTrueColor(t *testing.T) {
	if !(Capabilities{Profile: termenv.TrueColor}).TrueColor() {
		t.Error("TrueColor profile not reported")
	}
	if (Capabilities{Profile: termenv.ANSI256}).TrueColor() {
		t.Error("ANSI256 reported as true colour")
	}
}

func TestProbeHonoursOverride(t *testing.T) {
	caps := Probe("sixel")
	if caps.Protocol != ProtocolSixel {
		t.Errorf("Protocol = %v, want sixel", caps.Protocol)
	}
	if caps.Size.Cols <= 0 || caps.Size.Rows <= 0 {
		t.Errorf("Size = %+v", caps.Size)
	}
}

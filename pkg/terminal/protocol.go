package terminal

import (
	"fmt"
	"strings"
)

// Protocol is an inline image protocol.
type Protocol int

const (
	ProtocolHalfblocks Protocol = iota
	ProtocolKitty
	ProtocolITerm2
	ProtocolSixel
	ProtocolNone
)

var protocolNames = [...]string{
	ProtocolHalfblocks: "halfblocks",
	ProtocolKitty:      "kitty",
	ProtocolITerm2:     "iterm2",
	ProtocolSixel:      "sixel",
	ProtocolNone:       "none",
}

func (p Protocol) String() string {
	if p >= 0 && int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return "unknown"
}

// ParseProtocol maps a config value to a Protocol. "auto" and "" are not
// protocols; callers resolve them with SelectProtocol.
func ParseProtocol(name string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "halfblocks", "unicode":
		return ProtocolHalfblocks, nil
	case "kitty":
		return ProtocolKitty, nil
	case "iterm2":
		return ProtocolITerm2, nil
	case "sixel":
		return ProtocolSixel, nil
	case "none", "off":
		return ProtocolNone, nil
	}
	return ProtocolNone, fmt.Errorf("unknown image protocol %q", name)
}

// SelectProtocol picks the best protocol for term. Over SSH every graphics
// protocol falls back to halfblocks.
func SelectProtocol(term Terminal, ssh bool) Protocol {
	if ssh {
		return ProtocolHalfblocks
	}
	switch term {
	case TermGhostty, TermKitty, TermWezTerm:
		return ProtocolKitty
	case TermITerm2:
		return ProtocolITerm2
	default:
		return ProtocolHalfblocks
	}
}

// ResolveProtocol applies a config override on top of detection. Unknown
// overrides fall back to detection.
func ResolveProtocol(term Terminal, ssh bool, override string) Protocol {
	if o := strings.ToLower(override); o == "" || o == "auto" {
		return SelectProtocol(term, ssh)
	}
	p, err := ParseProtocol(override)
	if err != nil {
		return SelectProtocol(term, ssh)
	}
	return p
}

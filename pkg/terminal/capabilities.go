package terminal

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Capabilities summarizes what the current session can draw.
type Capabilities struct {
	Term        Terminal
	Protocol    Protocol
	Profile     termenv.Profile
	Size        Size
	Interactive bool
	SSH         bool
}

// TrueColor reports whether 24-bit colour is available.
func (c Capabilities) TrueColor() bool {
	return c.Profile == termenv.TrueColor
}

// Probe inspects the process environment and stdout. override is the
// image.protocol config value.
func Probe(override string) Capabilities {
	env := Env(os.Getenv)
	term := DetectEnv(env)
	ssh := IsSSH(env)
	fd := os.Stdout.Fd()

	return Capabilities{
		Term:        term,
		Protocol:    ResolveProtocol(term, ssh, override),
		Profile:     termenv.EnvColorProfile(),
		Size:        SizeOf(fd),
		Interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		SSH:         ssh,
	}
}

// dayboard is a terminal dashboard that shows a grid of GitHub users with
// their avatars, a live clock that can be hidden, and two prepend-only
// lists.
//
// Usage:
//
//	dayboard [flags]
//	dayboard users [--count n] [--output table|json|yaml] [--avatars]
//	dayboard mock-server [--addr host:port]
//	dayboard version
//
// Flags:
//
//	--config string   Path to config.toml (default: ~/.config/dayboard/config.toml)
//	--use-mocks       Serve GitHub responses from an in-process fake API
//	--verbose, -v     Enable debug logging
package main

import "gitlab.com/tinyland/lab/dayboard/cmd"

func main() {
	cmd.Execute()
}

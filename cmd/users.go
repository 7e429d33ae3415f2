package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xterm "github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/dayboard/pkg/collectors/github"
	"gitlab.com/tinyland/lab/dayboard/pkg/terminal"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Fetch GitHub users once and print them",
	Long: `Fetch the first <count> accounts from GET /users and print them.

Examples:
  dayboard users                     # 30 users as a table
  dayboard users --count 5 -o json   # five users as JSON
  dayboard users -o yaml             # YAML, one mapping per user
  dayboard users --avatars           # draw each avatar above its login`,
	RunE: runUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.Flags().IntP("count", "n", 0, "number of users, 1-100 (default: github.default_count)")
	usersCmd.Flags().StringP("output", "o", "table", "output format: table, json or yaml")
	usersCmd.Flags().Bool("avatars", false, "draw avatars with the terminal's image protocol")
}

func runUsers(cmd *cobra.Command, _ []string) error {
	cfg, logger := globals.cfg, globals.logger
	count, _ := cmd.Flags().GetInt("count")
	output, _ := cmd.Flags().GetString("output")
	avatars, _ := cmd.Flags().GetBool("avatars")

	if !cmd.Flags().Changed("count") {
		count = cfg.GitHub.DefaultCount
	}
	switch output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", output)
	}
	if avatars && output != "table" {
		return fmt.Errorf("--avatars needs --output table, not %q", output)
	}

	b, err := newBackend(cfg, logger, globals.useMocks)
	if err != nil {
		return err
	}
	defer b.Close()

	users, err := fetchUsers(cmd.Context(), b, count)
	if err != nil {
		return err
	}
	if st, ok := b.registry.Status(github.Name); ok {
		logger.Debug("users fetched", "count", count, "received", len(users), "latency", st.LastLatency)
	}

	out := cmd.OutOrStdout()
	if avatars && !isTerminal(out) {
		logger.Debug("output is not a terminal, skipping avatars")
		avatars = false
	}
	if avatars {
		caps := terminal.Probe(cfg.Image.Protocol)
		loader, err := b.loader(cfg, caps.Protocol, caps.Size, logger)
		if err != nil {
			return err
		}
		if loader != nil {
			for _, t := range loader.Load(cmd.Context(), users) {
				if t.Err != nil {
					logger.Warn("avatar failed", "login", t.Login, "err", t.Err)
					fmt.Fprintln(out, t.Login)
					continue
				}
				fmt.Fprintf(out, "%s\n%s\n", t.Rendered, t.Login)
			}
			return nil
		}
	}
	return writeUsers(out, output, users)
}

// fetchUsers runs the registered users collector once with count, so the
// fetch is recorded like the dashboard's.
func fetchUsers(ctx context.Context, b *backend, count int) ([]github.User, error) {
	b.collector.SetCount(count)
	data, err := b.registry.Run(ctx, github.Name)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, _ := data.([]github.User)
	return users, nil
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && xterm.IsTerminal(f.Fd())
}

// writeUsers prints users in the given format.
func writeUsers(w io.Writer, format string, users []github.User) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(users)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(users); err != nil {
			return err
		}
		return enc.Close()
	default:
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "LOGIN", "AVATAR")
		for i, u := range users {
			t.Row(strconv.Itoa(i+1), u.Login, u.AvatarURL)
		}
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}
}

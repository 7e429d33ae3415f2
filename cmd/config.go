package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/dayboard/pkg/docs"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration reference or a default config file",
	Long: `Print every config key with its type, default and environment override.

Examples:
  dayboard config                      # Markdown reference
  dayboard config --format toml > ~/.config/dayboard/config.toml`,
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	PersistentPostRun: func(*cobra.Command, []string) {},
	RunE:              runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("format", "f", "markdown", "output format: markdown or toml")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()
	switch format {
	case "markdown", "md":
		fmt.Fprint(out, docs.RenderConfigMarkdown(docs.ConfigReference()))
	case "toml":
		data, err := docs.DefaultTOML()
		if err != nil {
			return err
		}
		out.Write(data)
	default:
		return fmt.Errorf("unknown format %q (want markdown or toml)", format)
	}
	return nil
}

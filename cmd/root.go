package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/samsaffron/md2blocks/internal/config"
	"github.com/samsaffron/md2blocks/internal/mrkdwn"
	"github.com/samsaffron/md2blocks/internal/ui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "md2blocks",
	Short: "Convert Markdown into Slack Block Kit messages",
	Long: `md2blocks converts Markdown (GitHub flavored) into Slack Block Kit
blocks whose text uses Slack's mrkdwn dialect.

Examples:
  md2blocks convert README.md             # print {"blocks": [...]} JSON
  cat notes.md | md2blocks convert -      # read from stdin
  md2blocks preview CHANGELOG.md          # approximate Slack rendering
  md2blocks post release.md --channel "#releases"

  md2blocks config                        # view configuration
  md2blocks config completion zsh         # shell completions`,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readInput reads the document named by args: a file path, or stdin when
// the path is "-" or missing.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// newLogger returns the CLI logger: text records on stderr, debug level
// when requested.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// convertOptions builds converter options from the effective config.
func convertOptions(cfg *config.Config, logger *slog.Logger) mrkdwn.Options {
	return mrkdwn.Options{
		CheckboxPrefix: cfg.CheckboxPrefix(),
		MaxCellWidth:   cfg.Table.MaxCellWidth,
		Logger:         logger,
	}
}

func themeFromConfig(cfg *config.Config) *ui.Theme {
	return ui.ThemeFromConfig(ui.ThemeConfig{
		Preset:    cfg.Theme.Preset,
		Primary:   cfg.Theme.Primary,
		Secondary: cfg.Theme.Secondary,
		Muted:     cfg.Theme.Muted,
		Text:      cfg.Theme.Text,
	})
}

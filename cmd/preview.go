package cmd

import (
	"fmt"
	"os"

	"github.com/samsaffron/md2blocks/internal/mrkdwn"
	"github.com/samsaffron/md2blocks/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	previewFlags  ConvertFlags
	previewWidth  int
	previewSource bool
)

var previewCmd = &cobra.Command{
	Use:   "preview [file|-]",
	Short: "Show converted blocks as Slack would roughly render them",
	Long: `Convert a Markdown document and render the resulting blocks in the
terminal: headers in bold, quotes muted, images as links and dividers as rules.

Examples:
  md2blocks preview README.md
  md2blocks preview notes.md --source      # show the Markdown first
  md2blocks preview notes.md --width 60`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	AddConvertFlags(previewCmd, &previewFlags)
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 0, "Wrap width (default: terminal width)")
	previewCmd.Flags().BoolVar(&previewSource, "source", false, "Render the Markdown source above the blocks")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := previewFlags.loadConfig()
	if err != nil {
		return err
	}
	src, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), previewFlags.Debug)
	bs, err := mrkdwn.Convert(cmd.Context(), src, convertOptions(cfg, logger))
	if err != nil {
		return err
	}

	width := previewWidth
	if width <= 0 {
		width = terminalWidth()
	}
	out := cmd.OutOrStdout()
	theme := themeFromConfig(cfg)
	styles := ui.NewStyles(out, theme)

	if previewSource {
		rendered, err := ui.RenderMarkdown(src, width, theme)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprintln(out, rendered)
		fmt.Fprintln(out)
		fmt.Fprintln(out, styles.Muted.Render(fmt.Sprintf("── %d blocks ──", len(bs))))
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, ui.RenderPreview(bs, width, styles))
	return nil
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

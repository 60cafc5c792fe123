package cmd

import (
	"strings"

	"github.com/samsaffron/md2blocks/internal/config"
	"github.com/spf13/cobra"
)

// ConvertFlags holds the conversion flags shared by convert, preview and post.
// Each command creates its own instance with its own variables.
type ConvertFlags struct {
	CheckedPrefix   string
	UncheckedPrefix string
	MaxCellWidth    int
	Debug           bool
}

// AddConvertFlags adds --checked-prefix, --unchecked-prefix, --max-cell-width and --debug
func AddConvertFlags(cmd *cobra.Command, f *ConvertFlags) {
	cmd.Flags().StringVar(&f.CheckedPrefix, "checked-prefix", "", `Prefix for checked task items (e.g. "☑ ")`)
	cmd.Flags().StringVar(&f.UncheckedPrefix, "unchecked-prefix", "", `Prefix for unchecked task items (e.g. "☐ ")`)
	cmd.Flags().IntVar(&f.MaxCellWidth, "max-cell-width", 0, "Truncate table cells to this many columns (overrides config)")
	AddDebugFlag(cmd, &f.Debug)
}

// AddDebugFlag adds the --debug/-d flag
func AddDebugFlag(cmd *cobra.Command, dest *bool) {
	cmd.Flags().BoolVarP(dest, "debug", "d", false, "Log skipped tokens and delivery details")
}

// AddFormatFlag adds the --format/-f flag with completion
func AddFormatFlag(cmd *cobra.Command, dest *string) {
	cmd.Flags().StringVarP(dest, "format", "f", "", "Output format: json or yaml (overrides config)")
	if err := cmd.RegisterFlagCompletionFunc("format", FormatFlagCompletion); err != nil {
		panic("failed to register format completion: " + err.Error())
	}
}

// FormatFlagCompletion completes output formats
func FormatFlagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(outputFormats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// loadConfig loads the config file and applies the conversion flags.
func (f *ConvertFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.ApplyOverrides(f.CheckedPrefix, f.UncheckedPrefix, f.MaxCellWidth)
	return cfg, nil
}

// filterPrefix filters a slice to items starting with prefix
func filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		if strings.HasPrefix(item, prefix) {
			result = append(result, item)
		}
	}
	return result
}

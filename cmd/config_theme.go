package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/samsaffron/md2blocks/internal/config"
	"github.com/samsaffron/md2blocks/internal/ui"
	"github.com/spf13/cobra"
)

var configThemeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Select a preview color theme",
	Long: `Select one of the predefined preview color themes. Without a name,
choose interactively.

Available themes: gruvbox (default), dracula, nord, solarized, classic`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              configTheme,
	ValidArgsFunction: configThemeCompletion,
}

func init() {
	configCmd.AddCommand(configThemeCmd)
}

func configTheme(cmd *cobra.Command, args []string) error {
	var selected string
	if len(args) == 1 {
		selected = args[0]
	} else {
		current := ""
		if cfg, err := config.Load(); err == nil {
			current = cfg.Theme.Preset
		}
		var err error
		selected, err = runThemeSelector(current)
		if err != nil {
			return err
		}
	}

	if ui.GetPresetTheme(selected) == nil {
		return fmt.Errorf("unknown theme %q", selected)
	}
	return configSet(cmd, []string{"theme.preset", selected})
}

func runThemeSelector(current string) (string, error) {
	options := make([]huh.Option[string], 0, len(ui.PresetThemeNames))
	for _, name := range ui.PresetThemeNames {
		preset := ui.PresetThemes[name]
		options = append(options, huh.NewOption(name+" - "+preset.Description, name))
	}

	selected := current
	if selected == "" {
		selected = ui.PresetThemeNames[0]
	}
	err := huh.NewSelect[string]().
		Title("Preview theme").
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		return "", err
	}
	return selected, nil
}

func presetNames() []string {
	return ui.PresetThemeNames
}

func configThemeCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return filterPrefix(presetNames(), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

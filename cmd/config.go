package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/samsaffron/md2blocks/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage md2blocks configuration",
	Long: `View or edit your md2blocks configuration.

Examples:
  md2blocks config                     # show current config
  md2blocks config edit                # edit in $EDITOR
  md2blocks config reset               # reset to defaults
  md2blocks config completion zsh      # generate shell completions`,
	RunE: configShow, // Default to show
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file in $EDITOR",
	RunE:  configEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	RunE:  configPath,
}

var configCompletionCmd = &cobra.Command{
	Use:       "completion [bash|zsh|fish|powershell]",
	Short:     "Generate shell completion script",
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      configCompletion,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to defaults",
	Long:  `Reset the configuration file to default values. This will overwrite any existing configuration.`,
	RunE:  configReset,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value while preserving comments.

Examples:
  md2blocks config set lists.checked_prefix "☑ "
  md2blocks config set table.max_cell_width 30
  md2blocks config set slack.channel "#releases"
  md2blocks config set theme.preset nord`,
	Args:              cobra.ExactArgs(2),
	RunE:              configSet,
	ValidArgsFunction: configSetCompletion,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value.

Examples:
  md2blocks config get output.format
  md2blocks config get slack.channel`,
	Args:              cobra.ExactArgs(1),
	RunE:              configGet,
	ValidArgsFunction: configGetCompletion,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configCompletionCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}

func configShow(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !config.Exists() {
		fmt.Fprintf(out, "# No config file (using defaults)\n")
		fmt.Fprintf(out, "# Create one at: %s\n\n", configPath)
	} else {
		fmt.Fprintf(out, "# %s\n\n", configPath)
	}
	printConfig(out, cfg)
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "lists:\n")
	fmt.Fprintf(w, "  checked_prefix: %q\n", cfg.Lists.CheckedPrefix)
	fmt.Fprintf(w, "  unchecked_prefix: %q\n\n", cfg.Lists.UncheckedPrefix)

	fmt.Fprintf(w, "table:\n")
	fmt.Fprintf(w, "  max_cell_width: %d\n\n", cfg.Table.MaxCellWidth)

	fmt.Fprintf(w, "output:\n")
	fmt.Fprintf(w, "  format: %s\n", cfg.Output.Format)
	fmt.Fprintf(w, "  indent: %t\n\n", cfg.Output.Indent)

	fmt.Fprintf(w, "slack:\n")
	fmt.Fprintf(w, "  webhook_url: %s\n", credentialStatus(cfg.Slack.WebhookURL, "SLACK_WEBHOOK_URL"))
	fmt.Fprintf(w, "  token: %s\n", credentialStatus(cfg.Slack.Token, "SLACK_BOT_TOKEN"))
	fmt.Fprintf(w, "  channel: %q\n", cfg.Slack.Channel)
	fmt.Fprintf(w, "  max_blocks: %d\n\n", cfg.Slack.MaxBlocks)

	fmt.Fprintf(w, "theme:\n")
	fmt.Fprintf(w, "  preset: %q\n", cfg.Theme.Preset)
	fmt.Fprintf(w, "  primary: %q\n", cfg.Theme.Primary)
	fmt.Fprintf(w, "  secondary: %q\n", cfg.Theme.Secondary)
	fmt.Fprintf(w, "  muted: %q\n", cfg.Theme.Muted)
}

// credentialStatus describes a secret without printing it
func credentialStatus(value, envVar string) string {
	if value == "" {
		return fmt.Sprintf("(not set, export %s)", envVar)
	}
	if len(value) <= 12 {
		return "(set)"
	}
	return value[:8] + "…"
}

func configEdit(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Create default config if it doesn't exist
	if err := config.Save(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	// Get editor from environment
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	return editorCmd.Run()
}

func configPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func configReset(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(config.DefaultContent()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config reset to defaults: %s\n", configPath)
	return nil
}

func configCompletion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch args[0] {
	case "bash":
		return rootCmd.GenBashCompletion(out)
	case "zsh":
		return rootCmd.GenZshCompletion(out)
	case "fish":
		return rootCmd.GenFishCompletion(out, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(out)
	}
	return nil
}

// configSet sets a configuration value while preserving comments
func configSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Read existing file or create empty document
	var root yaml.Node
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		root = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	} else if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if root.Kind == 0 {
		// empty file
		root = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}

	if err := setYAMLValue(&root, strings.Split(key, "."), value); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(configPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

// setYAMLValue navigates/creates the path in a yaml.Node tree and sets the value
func setYAMLValue(root *yaml.Node, path []string, value string) error {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid document structure")
	}

	current := root.Content[0]
	if current.Kind != yaml.MappingNode {
		return fmt.Errorf("root is not a mapping")
	}

	for i, part := range path {
		isLast := i == len(path)-1

		var next *yaml.Node
		for j := 0; j+1 < len(current.Content); j += 2 {
			if current.Content[j].Value == part {
				next = current.Content[j+1]
				break
			}
		}

		if next == nil {
			next = &yaml.Node{Kind: yaml.MappingNode}
			if isLast {
				next = &yaml.Node{Kind: yaml.ScalarNode}
			}
			current.Content = append(current.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: part}, next)
		}

		if isLast {
			next.Kind = yaml.ScalarNode
			next.Value = value
			next.Tag = ""
			next.Style = 0
			next.Content = nil
			if strings.TrimSpace(value) != value || value == "" {
				// keep surrounding spaces such as prefix separators
				next.Style = yaml.DoubleQuotedStyle
			}
			return nil
		}

		if next.Kind != yaml.MappingNode {
			next.Kind = yaml.MappingNode
			next.Content = nil
			next.Value = ""
			next.Tag = ""
		}
		current = next
	}

	return nil
}

// configGet gets a configuration value
func configGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config file does not exist")
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	value, err := getYAMLValue(&root, strings.Split(key, "."))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

// getYAMLValue navigates the yaml.Node tree and returns the value at path
func getYAMLValue(root *yaml.Node, path []string) (string, error) {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return "", fmt.Errorf("invalid document structure")
	}

	current := root.Content[0]
	for _, part := range path {
		if current.Kind != yaml.MappingNode {
			return "", fmt.Errorf("path not found: expected mapping")
		}

		found := false
		for j := 0; j+1 < len(current.Content); j += 2 {
			if current.Content[j].Value == part {
				current = current.Content[j+1]
				found = true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("key not found: %s", part)
		}
	}

	if current.Kind == yaml.ScalarNode {
		return current.Value, nil
	}
	return "", fmt.Errorf("value is not a scalar")
}

var configKeys = []string{
	"lists.checked_prefix",
	"lists.unchecked_prefix",
	"table.max_cell_width",
	"output.format",
	"output.indent",
	"slack.webhook_url",
	"slack.token",
	"slack.channel",
	"slack.max_blocks",
	"theme.preset",
	"theme.primary",
	"theme.secondary",
	"theme.muted",
	"theme.text",
}

// configSetCompletion provides completions for config set
func configSetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return filterPrefix(configKeys, toComplete), cobra.ShellCompDirectiveNoFileComp
	case 1:
		return configValueCompletions(args[0], toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configGetCompletion provides completions for config get
func configGetCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return filterPrefix(configKeys, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// configValueCompletions returns completions for config values based on key
func configValueCompletions(key, toComplete string) []string {
	switch key {
	case "output.format":
		return filterPrefix(outputFormats, toComplete)
	case "output.indent":
		return filterPrefix([]string{"true", "false"}, toComplete)
	case "theme.preset":
		return filterPrefix(presetNames(), toComplete)
	case "lists.checked_prefix":
		return filterPrefix([]string{"☑ ", "✅ ", "[x] "}, toComplete)
	case "lists.unchecked_prefix":
		return filterPrefix([]string{"☐ ", "⬜ ", "[ ] "}, toComplete)
	}
	return nil
}

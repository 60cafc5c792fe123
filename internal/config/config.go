package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Lists  ListsConfig  `mapstructure:"lists"`
	Table  TableConfig  `mapstructure:"table"`
	Output OutputConfig `mapstructure:"output"`
	Slack  SlackConfig  `mapstructure:"slack"`
	Theme  ThemeConfig  `mapstructure:"theme"`
}

// ListsConfig controls how task-list items are prefixed.
// Leaving both prefixes empty keeps the plain bullet.
type ListsConfig struct {
	CheckedPrefix   string `mapstructure:"checked_prefix"`   // e.g. "☑ "
	UncheckedPrefix string `mapstructure:"unchecked_prefix"` // e.g. "☐ "
}

type TableConfig struct {
	MaxCellWidth int `mapstructure:"max_cell_width"` // truncate cells to this many columns
}

type OutputConfig struct {
	Format string `mapstructure:"format"` // "json" or "yaml"
	Indent bool   `mapstructure:"indent"` // pretty-print JSON
}

// SlackConfig configures delivery for the post command.
// Either WebhookURL, or Token together with Channel, must be set.
type SlackConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
	Token      string `mapstructure:"token"`
	Channel    string `mapstructure:"channel"`
	MaxBlocks  int    `mapstructure:"max_blocks"` // blocks per message (Slack allows 50)
}

// ThemeConfig allows customization of preview colors
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Preset    string `mapstructure:"preset"`    // gruvbox, dracula, nord, solarized, classic
	Primary   string `mapstructure:"primary"`   // headers
	Secondary string `mapstructure:"secondary"` // links, dividers
	Muted     string `mapstructure:"muted"`     // quotes, captions
	Text      string `mapstructure:"text"`      // body text
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	// Set defaults
	v.SetDefault("table.max_cell_width", 50)
	v.SetDefault("output.format", "json")
	v.SetDefault("output.indent", true)
	v.SetDefault("slack.max_blocks", 50)

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	resolveSlackCredentials(&cfg.Slack)

	return &cfg, nil
}

// ApplyOverrides applies command-line overrides to the config.
// Empty strings and non-positive widths leave the loaded values alone.
func (c *Config) ApplyOverrides(checkedPrefix, uncheckedPrefix string, maxCellWidth int) {
	if checkedPrefix != "" {
		c.Lists.CheckedPrefix = checkedPrefix
	}
	if uncheckedPrefix != "" {
		c.Lists.UncheckedPrefix = uncheckedPrefix
	}
	if maxCellWidth > 0 {
		c.Table.MaxCellWidth = maxCellWidth
	}
}

// CheckboxPrefix returns the task-list prefix function, or nil when no
// prefix is configured. A missing half falls back to the bullet.
func (c *Config) CheckboxPrefix() func(checked bool) string {
	checked, unchecked := c.Lists.CheckedPrefix, c.Lists.UncheckedPrefix
	if checked == "" && unchecked == "" {
		return nil
	}
	if checked == "" {
		checked = "• "
	}
	if unchecked == "" {
		unchecked = "• "
	}
	return func(isChecked bool) string {
		if isChecked {
			return checked
		}
		return unchecked
	}
}

// resolveSlackCredentials resolves Slack webhook and token settings
func resolveSlackCredentials(cfg *SlackConfig) {
	cfg.WebhookURL = expandEnv(cfg.WebhookURL)
	if cfg.WebhookURL == "" {
		cfg.WebhookURL = os.Getenv("SLACK_WEBHOOK_URL")
	}
	cfg.Token = expandEnv(cfg.Token)
	if cfg.Token == "" {
		cfg.Token = os.Getenv("SLACK_BOT_TOKEN")
	}
	cfg.Channel = expandEnv(cfg.Channel)
}

// expandEnv expands ${VAR} or $VAR in a string
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

// GetConfigDir returns the XDG config directory for md2blocks.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "md2blocks"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "md2blocks"), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// DefaultContent returns a commented starter config file.
func DefaultContent() string {
	return `# md2blocks configuration

lists:
  # Prefixes for task-list items ("- [x] done"). Leave unset for "• ".
  # checked_prefix: "☑ "
  # unchecked_prefix: "☐ "

table:
  max_cell_width: 50

output:
  format: json   # json or yaml
  indent: true

slack:
  # Incoming webhook, or a bot token plus channel
  # webhook_url: ${SLACK_WEBHOOK_URL}
  # token: ${SLACK_BOT_TOKEN}
  # channel: "#general"
  max_blocks: 50

theme:
  # preset: gruvbox
  # primary: "#b8bb26"
  # secondary: "#83a598"
  # muted: "#928374"
`
}

// Save writes the default config to disk unless a file already exists.
func Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(DefaultContent()), 0600)
}

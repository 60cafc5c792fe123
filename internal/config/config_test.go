package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{
		Lists: ListsConfig{CheckedPrefix: "[x] ", UncheckedPrefix: "[ ] "},
		Table: TableConfig{MaxCellWidth: 50},
	}

	cfg.ApplyOverrides("✅ ", "", 0)
	if cfg.Lists.CheckedPrefix != "✅ " {
		t.Fatalf("checked prefix=%q, want %q", cfg.Lists.CheckedPrefix, "✅ ")
	}
	if cfg.Lists.UncheckedPrefix != "[ ] " {
		t.Fatalf("unchecked prefix changed unexpectedly: %q", cfg.Lists.UncheckedPrefix)
	}
	if cfg.Table.MaxCellWidth != 50 {
		t.Fatalf("max cell width changed unexpectedly: %d", cfg.Table.MaxCellWidth)
	}

	cfg.ApplyOverrides("", "", 20)
	if cfg.Table.MaxCellWidth != 20 {
		t.Fatalf("max cell width=%d, want 20", cfg.Table.MaxCellWidth)
	}
}

func TestCheckboxPrefix(t *testing.T) {
	cfg := &Config{}
	if cfg.CheckboxPrefix() != nil {
		t.Fatal("expected nil prefix func with no prefixes configured")
	}

	cfg.Lists.CheckedPrefix = "☑ "
	fn := cfg.CheckboxPrefix()
	if fn == nil {
		t.Fatal("expected prefix func")
	}
	if got := fn(true); got != "☑ " {
		t.Fatalf("checked=%q", got)
	}
	if got := fn(false); got != "• " {
		t.Fatalf("unchecked=%q, want bullet fallback", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SLACK_WEBHOOK_URL", "")
	t.Setenv("SLACK_BOT_TOKEN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Table.MaxCellWidth != 50 {
		t.Errorf("max_cell_width=%d, want 50", cfg.Table.MaxCellWidth)
	}
	if cfg.Output.Format != "json" || !cfg.Output.Indent {
		t.Errorf("output=%+v", cfg.Output)
	}
	if cfg.Slack.MaxBlocks != 50 {
		t.Errorf("max_blocks=%d, want 50", cfg.Slack.MaxBlocks)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("MY_HOOK", "https://hooks.slack.com/services/T/B/X")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-env")

	dir := filepath.Join(home, "md2blocks")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `lists:
  checked_prefix: "[x] "
table:
  max_cell_width: 12
output:
  format: yaml
slack:
  webhook_url: ${MY_HOOK}
  channel: "#dev"
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lists.CheckedPrefix != "[x] " {
		t.Errorf("checked_prefix=%q", cfg.Lists.CheckedPrefix)
	}
	if cfg.Table.MaxCellWidth != 12 {
		t.Errorf("max_cell_width=%d", cfg.Table.MaxCellWidth)
	}
	if cfg.Output.Format != "yaml" || !cfg.Output.Indent {
		t.Errorf("output=%+v", cfg.Output)
	}
	if cfg.Slack.WebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("webhook_url=%q", cfg.Slack.WebhookURL)
	}
	if cfg.Slack.Token != "xoxb-env" {
		t.Errorf("token=%q, want env fallback", cfg.Slack.Token)
	}
	if cfg.Slack.Channel != "#dev" {
		t.Errorf("channel=%q", cfg.Slack.Channel)
	}
}

func TestSaveWritesOnce(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("config file not created")
	}

	path, _ := GetConfigPath()
	if err := os.WriteFile(path, []byte("table:\n  max_cell_width: 7\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := Save(); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "table:\n  max_cell_width: 7\n" {
		t.Fatalf("Save overwrote existing file: %q", data)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("MD2BLOCKS_TEST", "value")
	for in, want := range map[string]string{
		"${MD2BLOCKS_TEST}": "value",
		"$MD2BLOCKS_TEST":   "value",
		"literal":           "literal",
	} {
		if got := expandEnv(in); got != want {
			t.Errorf("expandEnv(%q)=%q, want %q", in, got, want)
		}
	}
}

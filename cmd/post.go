package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/samsaffron/md2blocks/internal/config"
	"github.com/samsaffron/md2blocks/internal/deliver"
	"github.com/samsaffron/md2blocks/internal/mrkdwn"
	"github.com/samsaffron/md2blocks/internal/signal"
	"github.com/samsaffron/md2blocks/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	postFlags     ConvertFlags
	postWebhook   string
	postToken     string
	postChannel   string
	postMaxBlocks int
	postYes       bool
	postDryRun    bool
)

var postCmd = &cobra.Command{
	Use:   "post [file|-]",
	Short: "Convert Markdown and post it to Slack",
	Long: `Convert a Markdown document and post the blocks to Slack, either
through an incoming webhook or with a bot token to a channel. Long documents
are split across several messages without splitting any block.

Credentials come from flags, the config file, or SLACK_WEBHOOK_URL and
SLACK_BOT_TOKEN.

Examples:
  md2blocks post release.md --webhook https://hooks.slack.com/services/...
  md2blocks post release.md --channel "#releases"
  md2blocks post notes.md --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPost,
}

func init() {
	rootCmd.AddCommand(postCmd)
	AddConvertFlags(postCmd, &postFlags)
	postCmd.Flags().StringVar(&postWebhook, "webhook", "", "Incoming webhook URL (overrides config)")
	postCmd.Flags().StringVar(&postToken, "token", "", "Bot token (overrides config and SLACK_BOT_TOKEN)")
	postCmd.Flags().StringVarP(&postChannel, "channel", "c", "", "Channel to post to with a bot token")
	postCmd.Flags().IntVar(&postMaxBlocks, "max-blocks", 0, "Blocks per message, at most 50 (overrides config)")
	postCmd.Flags().BoolVarP(&postYes, "yes", "y", false, "Post without asking for confirmation")
	postCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "Show how the document would be split and exit")
}

func runPost(cmd *cobra.Command, args []string) error {
	cfg, err := postFlags.loadConfig()
	if err != nil {
		return err
	}
	applyPostOverrides(&cfg.Slack)

	src, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context())
	defer stop()

	logger := newLogger(cmd.ErrOrStderr(), postFlags.Debug)
	bs, err := mrkdwn.Convert(ctx, src, convertOptions(cfg, logger))
	if err != nil {
		return err
	}
	if len(bs) == 0 {
		return errors.New("document produced no blocks")
	}

	batches := deliver.Batch(bs, cfg.Slack.MaxBlocks)
	styles := ui.NewStyles(cmd.ErrOrStderr(), themeFromConfig(cfg))

	if postDryRun {
		for i, batch := range batches {
			fmt.Fprintf(cmd.OutOrStdout(), "message %d/%d: %d blocks, %q\n",
				i+1, len(batches), len(batch), deliver.FallbackText(batch))
		}
		return nil
	}

	sender, target, err := newSender(cfg.Slack)
	if err != nil {
		return err
	}

	// Only prompt when a person is at the terminal and stdin is not the document.
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && len(args) > 0 && args[0] != "-"
	if !postYes && interactive {
		ok, err := ui.Confirm(
			fmt.Sprintf("Post %d blocks to %s?", len(bs), target),
			fmt.Sprintf("%d message(s)", len(batches)),
		)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	sent, err := deliver.Deliver(ctx, sender, bs, cfg.Slack.MaxBlocks)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.FormatResult(false,
			fmt.Sprintf("posted %d of %d messages", sent, len(batches))))
		return err
	}
	logger.Debug("delivered", "target", target, "messages", sent, "blocks", len(bs))
	fmt.Fprintln(cmd.ErrOrStderr(), styles.FormatResult(true,
		fmt.Sprintf("posted %d message(s) to %s", sent, target)))
	return nil
}

func applyPostOverrides(cfg *config.SlackConfig) {
	if postWebhook != "" {
		cfg.WebhookURL = postWebhook
	}
	if postToken != "" {
		cfg.Token = postToken
	}
	if postChannel != "" {
		cfg.Channel = postChannel
	}
	if postMaxBlocks > 0 {
		cfg.MaxBlocks = postMaxBlocks
	}
}

// newSender picks the delivery method. A channel selects the bot token
// path; otherwise the webhook is used.
func newSender(cfg config.SlackConfig) (deliver.Sender, string, error) {
	if cfg.Channel != "" {
		s, err := deliver.NewChannelSender(cfg.Token, cfg.Channel)
		if err != nil {
			return nil, "", err
		}
		return s, cfg.Channel, nil
	}
	if cfg.WebhookURL != "" {
		return deliver.WebhookSender{URL: cfg.WebhookURL}, "webhook", nil
	}
	return nil, "", errors.New("no Slack destination: set --webhook, or --channel with a bot token")
}

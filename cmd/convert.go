package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/samsaffron/md2blocks/internal/blocks"
	"github.com/samsaffron/md2blocks/internal/mrkdwn"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var outputFormats = []string{"json", "yaml"}

var (
	convertFlags   ConvertFlags
	convertFormat  string
	convertCompact bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file|-]",
	Short: "Convert Markdown to Block Kit JSON or YAML",
	Long: `Convert a Markdown document into Slack blocks and print them as a
Block Kit payload. Reads stdin when the file is "-" or omitted.

Examples:
  md2blocks convert README.md
  md2blocks convert notes.md --format yaml
  md2blocks convert todo.md --checked-prefix "☑ " --unchecked-prefix "☐ "
  echo "# Hi" | md2blocks convert --compact`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	AddConvertFlags(convertCmd, &convertFlags)
	AddFormatFlag(convertCmd, &convertFormat)
	convertCmd.Flags().BoolVar(&convertCompact, "compact", false, "Print JSON on a single line")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := convertFlags.loadConfig()
	if err != nil {
		return err
	}
	src, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), convertFlags.Debug)
	bs, err := mrkdwn.Convert(cmd.Context(), src, convertOptions(cfg, logger))
	if err != nil {
		return err
	}
	logger.Debug("converted", "bytes", len(src), "blocks", len(bs))

	format := cfg.Output.Format
	if convertFormat != "" {
		format = convertFormat
	}
	indent := cfg.Output.Indent && !convertCompact
	return writeBlocks(cmd.OutOrStdout(), bs, format, indent)
}

// payload is the Block Kit message body.
type payload struct {
	Blocks blocks.List `json:"blocks"`
}

// writeBlocks prints bs as {"blocks": [...]} in the given format.
func writeBlocks(w io.Writer, bs []blocks.Block, format string, indent bool) error {
	p := payload{Blocks: blocks.List(bs)}
	if p.Blocks == nil {
		p.Blocks = blocks.List{}
	}

	switch format {
	case "", "json":
		var data []byte
		var err error
		if indent {
			data, err = json.MarshalIndent(p, "", "  ")
		} else {
			data, err = json.Marshal(p)
		}
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return writeYAML(w, data)
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}

// writeYAML re-encodes a JSON document as block-style YAML, keeping key order.
func writeYAML(w io.Writer, jsonData []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(jsonData, &root); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	clearStyle(&root)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// clearStyle drops the flow and quoting styles a JSON source leaves on nodes.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

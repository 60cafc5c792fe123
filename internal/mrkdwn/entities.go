package mrkdwn

import (
	"strings"

	"github.com/samsaffron/md2blocks/internal/blocks"
)

// entityReverter decodes the character references mrkdwn has no use for.
// &amp;, &lt; and &gt; are deliberately absent: Slack requires them.
var entityReverter = strings.NewReplacer(
	"&#39;", "'",
	"&#x27;", "'",
	"&apos;", "'",
	"&quot;", `"`,
	"&#34;", `"`,
	"&#x22;", `"`,
	"&#x2F;", "/",
	"&#x2f;", "/",
	"&#47;", "/",
	"&#96;", "`",
	"&#x60;", "`",
)

func revertEntities(s string) string {
	return entityReverter.Replace(s)
}

// RevertEntities returns a copy of bs in which the text of every section,
// section field and header has apostrophe, quotation mark, slash and
// backtick references decoded. Other blocks are returned unchanged.
func RevertEntities(bs []blocks.Block) []blocks.Block {
	if bs == nil {
		return nil
	}
	out := make([]blocks.Block, len(bs))
	for i, b := range bs {
		switch b.Kind {
		case blocks.KindSection:
			var fields []string
			if b.Fields != nil {
				fields = make([]string, len(b.Fields))
				for j, f := range b.Fields {
					fields[j] = revertEntities(f)
				}
			}
			out[i] = b.WithText(revertEntities(b.Text)).WithFields(fields)
		case blocks.KindHeader:
			out[i] = b.WithText(revertEntities(b.Text))
		default:
			out[i] = b
		}
	}
	return out
}

package mrkdwn

import (
	"github.com/samsaffron/md2blocks/internal/blocks"
	"github.com/samsaffron/md2blocks/internal/token"
)

// assemble translates the top-level tokens in order. Results of different
// tokens are never merged.
func (t *translator) assemble(toks []token.Token) []blocks.Block {
	var out []blocks.Block
	for _, tok := range toks {
		out = append(out, t.block(tok)...)
	}
	return out
}

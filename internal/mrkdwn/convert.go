// Package mrkdwn converts a Markdown document into Slack blocks whose text
// uses the mrkdwn dialect.
//
// Slack's dialect is much smaller than Markdown, so the conversion is lossy
// by design of the target: headings of every level become header blocks,
// tables become monospace grids inside a code block, block quotes keep only
// their paragraphs, and images are lifted out of the text into image
// blocks.
package mrkdwn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samsaffron/md2blocks/internal/blocks"
	"github.com/samsaffron/md2blocks/internal/lexer"
	"github.com/samsaffron/md2blocks/internal/token"
)

// DefaultMaxCellWidth is the table cell truncation limit used when
// Options.MaxCellWidth is zero.
const DefaultMaxCellWidth = 50

// defaultBullet prefixes unordered list items.
const defaultBullet = "• "

// Options configures a conversion. The zero value is ready to use.
type Options struct {
	// CheckboxPrefix returns the prefix of a task-list item. When nil,
	// task items get the plain bullet.
	CheckboxPrefix func(checked bool) string
	// MaxCellWidth truncates table cells to this many display columns.
	// Zero selects DefaultMaxCellWidth; a negative value disables it.
	MaxCellWidth int
	// Lexer tokenizes the document. Defaults to lexer.New().
	Lexer lexer.Lexer
	// Logger receives debug records for skipped tokens. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Convert tokenizes text and translates it into blocks in document order.
// The only error is a tokenizer failure or a done context; anything the
// translator does not understand is skipped.
func Convert(ctx context.Context, text string, opts Options) ([]blocks.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lx := opts.Lexer
	if lx == nil {
		lx = lexer.New()
	}
	toks, err := lx.Lex(text)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Translate(toks, opts), nil
}

// Translate converts an already tokenized document.
func Translate(toks []token.Token, opts Options) []blocks.Block {
	t := newTranslator(opts)
	return RevertEntities(t.assemble(toks))
}

// translator carries the options of a single conversion.
type translator struct {
	checkboxPrefix func(bool) string
	maxCellWidth   int
	log            *slog.Logger
}

func newTranslator(opts Options) *translator {
	t := &translator{
		checkboxPrefix: opts.CheckboxPrefix,
		maxCellWidth:   opts.MaxCellWidth,
		log:            opts.Logger,
	}
	if t.maxCellWidth == 0 {
		t.maxCellWidth = DefaultMaxCellWidth
	}
	if t.log == nil {
		t.log = slog.Default()
	}
	return t
}

func (t *translator) skip(tok token.Token, where string) {
	t.log.Debug("skipping token", "kind", tok.Kind.String(), "in", where)
}

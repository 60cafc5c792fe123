package mrkdwn

import (
	"strings"

	"github.com/samsaffron/md2blocks/internal/blocks"
	"github.com/samsaffron/md2blocks/internal/token"
)

// inlineResult is the translation of one inline token: a mrkdwn fragment
// and any images found in it, which are never part of the fragment.
type inlineResult struct {
	text   string
	images []blocks.Block
}

func (r *inlineResult) add(o inlineResult) {
	r.text += o.text
	r.images = append(r.images, o.images...)
}

func (t *translator) inline(tok token.Token) inlineResult {
	switch tok.Kind {
	case token.KindText:
		return inlineResult{text: Escape(tok.Text)}
	case token.KindEmphasis:
		return t.wrap(tok, "_")
	case token.KindStrong:
		return t.wrap(tok, "*")
	case token.KindDelete:
		return t.wrap(tok, "~")
	case token.KindCodeSpan:
		return inlineResult{text: "`" + Escape(tok.Text) + "`"}
	case token.KindLink:
		label := t.inlines(tok.Children)
		text := label.text
		if text == "" {
			text = Escape(tok.URL)
		}
		// The trailing space stands in for whitespace the link markup swallowed.
		return inlineResult{text: "<" + tok.URL + "|" + text + "> ", images: label.images}
	case token.KindLineBreak:
		return inlineResult{}
	case token.KindRawHTML:
		return inlineResult{text: tok.Raw}
	case token.KindImage:
		return inlineResult{images: []blocks.Block{imageBlock(tok)}}
	}
	t.skip(tok, "inline")
	return inlineResult{}
}

func (t *translator) inlines(toks []token.Token) inlineResult {
	var r inlineResult
	for _, tok := range toks {
		r.add(t.inline(tok))
	}
	return r
}

func (t *translator) wrap(tok token.Token, delim string) inlineResult {
	r := t.inlines(tok.Children)
	if r.text != "" {
		r.text = delim + r.text + delim
	}
	return r
}

func imageBlock(tok token.Token) blocks.Block {
	return blocks.Image(tok.URL, imageAlt(tok), tok.Title)
}

// imageAlt picks the accessible text of an image: alt, title, then URL.
func imageAlt(tok token.Token) string {
	switch {
	case tok.Text != "":
		return tok.Text
	case tok.Title != "":
		return tok.Title
	}
	return tok.URL
}

// plainText flattens inline tokens into their literal leaves, dropping all
// styling delimiters. Images contribute their accessible text.
func plainText(toks []token.Token) []string {
	var leaves []string
	for _, tok := range toks {
		switch tok.Kind {
		case token.KindText, token.KindCodeSpan:
			leaves = append(leaves, tok.Text)
		case token.KindRawHTML:
			leaves = append(leaves, tok.Raw)
		case token.KindImage:
			leaves = append(leaves, imageAlt(tok))
		case token.KindEmphasis, token.KindStrong, token.KindDelete, token.KindLink:
			leaves = append(leaves, plainText(tok.Children)...)
		}
	}
	return leaves
}

// cellText joins the plain-text leaves of a table cell with single spaces.
func cellText(toks []token.Token) string {
	var parts []string
	for _, leaf := range plainText(toks) {
		if leaf = strings.TrimSpace(leaf); leaf != "" {
			parts = append(parts, leaf)
		}
	}
	return strings.Join(parts, " ")
}

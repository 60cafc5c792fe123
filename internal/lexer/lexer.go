// Package lexer turns Markdown source into a token tree using goldmark with
// the GitHub Flavored Markdown extensions enabled.
package lexer

import (
	"bytes"
	"fmt"

	"github.com/samsaffron/md2blocks/internal/token"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Lexer produces the top-level tokens of a document.
type Lexer interface {
	Lex(src string) ([]token.Token, error)
}

// gfmMarkdown is a shared goldmark instance with tables, strikethrough,
// task lists and linkify enabled. Parsers are safe for concurrent use.
var gfmMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// GFM is the default Lexer.
type GFM struct{}

// New returns the default GitHub Flavored Markdown lexer.
func New() GFM {
	return GFM{}
}

// Lex parses src and returns its top-level block tokens. Text payloads are
// backslash-unescaped and entity-decoded but never HTML-escaped; escaping is
// left to the consumer.
func (GFM) Lex(src string) (toks []token.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			toks = nil
			err = fmt.Errorf("goldmark: %v", r)
		}
	}()

	source := []byte(src)
	doc := gfmMarkdown.Parser().Parse(text.NewReader(source))
	w := walker{source: source}
	return w.blocks(doc), nil
}

type walker struct {
	source []byte
}

func (w walker) blocks(parent ast.Node) []token.Token {
	var out []token.Token
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if tok, ok := w.block(c); ok {
			out = append(out, tok)
		}
	}
	return out
}

func (w walker) block(n ast.Node) (token.Token, bool) {
	switch n := n.(type) {
	case *ast.Heading:
		return token.Token{
			Kind:     token.KindHeading,
			Raw:      w.lines(n),
			Level:    n.Level,
			Children: w.inlines(n),
		}, true
	case *ast.Paragraph:
		return token.Token{Kind: token.KindParagraph, Raw: w.lines(n), Children: w.inlines(n)}, true
	case *ast.TextBlock:
		// Tight list items wrap their text in a TextBlock; it behaves as a paragraph.
		return token.Token{Kind: token.KindParagraph, Raw: w.lines(n), Children: w.inlines(n)}, true
	case *ast.List:
		list := token.Token{Kind: token.KindList, Ordered: n.IsOrdered()}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if item, ok := c.(*ast.ListItem); ok {
				list.Children = append(list.Children, w.listItem(item))
			}
		}
		return list, true
	case *ast.FencedCodeBlock:
		code := w.lines(n)
		return token.Token{
			Kind: token.KindCode,
			Raw:  code,
			Lang: string(n.Language(w.source)),
			Text: trimFinalNewline(code),
		}, true
	case *ast.CodeBlock:
		code := w.lines(n)
		return token.Token{Kind: token.KindCode, Raw: code, Text: trimFinalNewline(code)}, true
	case *ast.Blockquote:
		return token.Token{Kind: token.KindBlockquote, Children: w.blocks(n)}, true
	case *ast.ThematicBreak:
		return token.Token{Kind: token.KindThematicBreak}, true
	case *ast.HTMLBlock:
		raw := w.lines(n)
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(w.source))
		}
		return token.Token{Kind: token.KindHTML, Raw: raw}, true
	case *east.Table:
		table := token.Token{Kind: token.KindTable}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch row := c.(type) {
			case *east.TableHeader:
				table.Children = append(table.Children, w.tableRow(row, true))
			case *east.TableRow:
				table.Children = append(table.Children, w.tableRow(row, false))
			}
		}
		return table, true
	}
	return token.Token{}, false
}

func (w walker) listItem(n *ast.ListItem) token.Token {
	item := token.Token{Kind: token.KindListItem, Children: w.blocks(n)}
	if first := n.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
			item.Checked = token.CheckOf(box.IsChecked)
		}
	}
	return item
}

func (w walker) tableRow(row ast.Node, header bool) token.Token {
	tok := token.Token{Kind: token.KindTableRow, Header: header}
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if cell, ok := c.(*east.TableCell); ok {
			tok.Children = append(tok.Children, token.Token{
				Kind:     token.KindTableCell,
				Children: w.inlines(cell),
			})
		}
	}
	return tok
}

func (w walker) inlines(parent ast.Node) []token.Token {
	var out []token.Token
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, w.inline(c)...)
	}
	return out
}

func (w walker) inline(n ast.Node) []token.Token {
	switch n := n.(type) {
	case *ast.Text:
		raw := n.Segment.Value(w.source)
		s := string(decode(raw))
		if n.HardLineBreak() {
			return []token.Token{
				{Kind: token.KindText, Raw: string(raw), Text: s},
				{Kind: token.KindLineBreak},
			}
		}
		if n.SoftLineBreak() {
			s += "\n"
		}
		return []token.Token{{Kind: token.KindText, Raw: string(raw), Text: s}}
	case *ast.String:
		return []token.Token{{Kind: token.KindText, Raw: string(n.Value), Text: string(n.Value)}}
	case *ast.Emphasis:
		kind := token.KindEmphasis
		if n.Level >= 2 {
			kind = token.KindStrong
		}
		return []token.Token{{Kind: kind, Children: w.inlines(n)}}
	case *east.Strikethrough:
		return []token.Token{{Kind: token.KindDelete, Children: w.inlines(n)}}
	case *ast.CodeSpan:
		code := w.codeSpan(n)
		return []token.Token{{Kind: token.KindCodeSpan, Raw: "`" + code + "`", Text: code}}
	case *ast.Link:
		return []token.Token{{
			Kind:     token.KindLink,
			URL:      string(n.Destination),
			Title:    string(n.Title),
			Children: w.inlines(n),
		}}
	case *ast.AutoLink:
		label := string(n.Label(w.source))
		return []token.Token{{
			Kind:     token.KindLink,
			Raw:      label,
			URL:      string(n.URL(w.source)),
			Children: []token.Token{{Kind: token.KindText, Raw: label, Text: label}},
		}}
	case *ast.Image:
		children := w.inlines(n)
		return []token.Token{{
			Kind:     token.KindImage,
			URL:      string(n.Destination),
			Title:    string(n.Title),
			Text:     altText(children),
			Children: children,
		}}
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(w.source))
		}
		return []token.Token{{Kind: token.KindRawHTML, Raw: buf.String()}}
	case *east.TaskCheckBox:
		// Hoisted onto the list item by listItem.
		return nil
	}
	return nil
}

func (w walker) codeSpan(n *ast.CodeSpan) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			v := t.Segment.Value(w.source)
			if bytes.HasSuffix(v, []byte("\n")) {
				buf.Write(v[:len(v)-1])
				buf.WriteByte(' ')
				continue
			}
			buf.Write(v)
		case *ast.String:
			buf.Write(t.Value)
		}
	}
	return buf.String()
}

func (w walker) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(w.source))
	}
	return buf.String()
}

// altText flattens the inline children of an image into its description.
func altText(children []token.Token) string {
	var buf bytes.Buffer
	var walk func([]token.Token)
	walk = func(toks []token.Token) {
		for _, t := range toks {
			switch t.Kind {
			case token.KindText, token.KindCodeSpan:
				buf.WriteString(t.Text)
			case token.KindImage:
				buf.WriteString(t.Text)
			default:
				walk(t.Children)
			}
		}
	}
	walk(children)
	return buf.String()
}

func decode(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	return util.ResolveEntityNames(b)
}

func trimFinalNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		return s[:n-1]
	}
	return s
}

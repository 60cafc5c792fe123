package mrkdwn

import (
	"strconv"
	"strings"

	"github.com/samsaffron/md2blocks/internal/blocks"
	"github.com/samsaffron/md2blocks/internal/token"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// block translates one block-level token into zero or more blocks.
func (t *translator) block(tok token.Token) []blocks.Block {
	switch tok.Kind {
	case token.KindHeading:
		return t.heading(tok)
	case token.KindParagraph:
		return t.paragraph(tok.Children)
	case token.KindCode:
		return []blocks.Block{blocks.Section(fence(Escape(tok.Text)))}
	case token.KindList:
		return []blocks.Block{t.list(tok)}
	case token.KindTable:
		return []blocks.Block{t.table(tok)}
	case token.KindBlockquote:
		return t.blockquote(tok)
	case token.KindThematicBreak:
		return []blocks.Block{blocks.Divider()}
	case token.KindHTML:
		return htmlImages(tok.Raw)
	}
	t.skip(tok, "document")
	return nil
}

func (t *translator) heading(tok token.Token) []blocks.Block {
	text := strings.Join(plainText(tok.Children), "")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return []blocks.Block{blocks.Header(text)}
}

// paragraph folds inline tokens into sections. Consecutive fragments share
// one section; an image closes the open section and stands on its own.
func (t *translator) paragraph(children []token.Token) []blocks.Block {
	var out []blocks.Block
	var acc strings.Builder
	flush := func() {
		if strings.TrimSpace(acc.String()) != "" {
			out = append(out, blocks.Section(acc.String()))
		}
		acc.Reset()
	}
	for _, child := range children {
		r := t.inline(child)
		acc.WriteString(r.text)
		if len(r.images) > 0 {
			flush()
			out = append(out, r.images...)
		}
	}
	flush()
	return out
}

// list renders every item on its own line of a single section. Nested lists
// are not descended into.
func (t *translator) list(tok token.Token) blocks.Block {
	lines := make([]string, 0, len(tok.Children))
	n := 0
	for _, item := range tok.Children {
		if item.Kind != token.KindListItem {
			t.skip(item, "list")
			continue
		}
		n++
		content := t.listItem(item)
		if item.Checked != token.CheckUnset {
			content = strings.TrimLeft(content, " ")
		}
		var prefix string
		switch {
		case tok.Ordered:
			prefix = strconv.Itoa(n) + ". "
		case item.Checked != token.CheckUnset:
			prefix = defaultBullet
			if t.checkboxPrefix != nil {
				prefix = t.checkboxPrefix(item.Checked == token.CheckTrue)
			}
		default:
			prefix = defaultBullet
		}
		lines = append(lines, prefix+content)
	}
	return blocks.Section(strings.Join(lines, "\n"))
}

// listItem returns the text of an item's paragraphs. Images are dropped.
func (t *translator) listItem(item token.Token) string {
	var parts []string
	for _, child := range item.Children {
		switch child.Kind {
		case token.KindParagraph, token.KindHeading:
			parts = append(parts, t.inlines(child.Children).text)
		case token.KindList:
			// nested lists are not rendered
		default:
			t.skip(child, "list item")
		}
	}
	return strings.Join(parts, " ")
}

func (t *translator) table(tok token.Token) blocks.Block {
	var header []string
	var rows [][]string
	for _, row := range tok.Children {
		if row.Kind != token.KindTableRow {
			t.skip(row, "table")
			continue
		}
		cells := make([]string, 0, len(row.Children))
		for _, cell := range row.Children {
			cells = append(cells, cellText(cell.Children))
		}
		if row.Header && header == nil {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}
	// Widths are measured on literal text; escape once the grid is laid out.
	return blocks.Section(fence(Escape(FormatGrid(header, rows, t.maxCellWidth))))
}

// blockquote keeps only the quoted paragraphs. Multi-line sections get a
// quote marker on every line.
func (t *translator) blockquote(tok token.Token) []blocks.Block {
	var out []blocks.Block
	for _, child := range tok.Children {
		if child.Kind != token.KindParagraph {
			t.skip(child, "blockquote")
			continue
		}
		for _, b := range t.paragraph(child.Children) {
			if b.Kind == blocks.KindSection && strings.Contains(b.Text, "\n") {
				b = b.WithText(quote(b.Text))
			}
			out = append(out, b)
		}
	}
	return out
}

func quote(s string) string {
	return "> " + strings.ReplaceAll(s, "\n", "\n> ")
}

func fence(code string) string {
	return "```\n" + code + "\n```"
}

// htmlImages returns an image block for every <img> with a src in raw.
// Other markup, including malformed markup, yields nothing.
func htmlImages(raw string) []blocks.Block {
	var out []blocks.Block
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.Img {
				continue
			}
			src := attrVal(tok.Attr, "src")
			if src == "" {
				continue
			}
			alt := attrVal(tok.Attr, "alt")
			if alt == "" {
				alt = src
			}
			out = append(out, blocks.Image(src, alt, attrVal(tok.Attr, "title")))
		}
	}
}

// attrVal returns the value of a named HTML attribute, or "".
func attrVal(attrs []html.Attribute, name string) string {
	for _, a := range attrs {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

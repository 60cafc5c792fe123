// Package blocks holds the message blocks produced by the converter and
// their Slack Block Kit encoding.
package blocks

import (
	"encoding/json"

	"github.com/slack-go/slack"
)

// Kind identifies a block variant.
type Kind int

const (
	KindSection Kind = iota + 1
	KindHeader
	KindImage
	KindDivider
)

func (k Kind) String() string {
	switch k {
	case KindSection:
		return "section"
	case KindHeader:
		return "header"
	case KindImage:
		return "image"
	case KindDivider:
		return "divider"
	}
	return "unknown"
}

// Block is one rendered unit. Blocks are values: modify them through
// WithText and WithFields, which return copies.
type Block struct {
	Kind Kind

	// Section and Header
	Text string
	// Section only
	Fields []string

	// Image only
	URL     string
	AltText string
	Title   string
}

// Section returns a section block holding mrkdwn text.
func Section(text string) Block {
	return Block{Kind: KindSection, Text: text}
}

// Header returns a header block holding plain text.
func Header(text string) Block {
	return Block{Kind: KindHeader, Text: text}
}

// Image returns an image block. title may be empty.
func Image(url, altText, title string) Block {
	return Block{Kind: KindImage, URL: url, AltText: altText, Title: title}
}

// Divider returns a divider block.
func Divider() Block {
	return Block{Kind: KindDivider}
}

// WithText returns a copy of b with its text replaced.
func (b Block) WithText(text string) Block {
	b.Text = text
	b.Fields = cloneStrings(b.Fields)
	return b
}

// WithFields returns a copy of b with its section fields replaced.
func (b Block) WithFields(fields []string) Block {
	b.Fields = cloneStrings(fields)
	return b
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// Slack converts b to its Block Kit representation. It returns nil for a
// zero Block.
func (b Block) Slack() slack.Block {
	switch b.Kind {
	case KindSection:
		text := slack.NewTextBlockObject(slack.MarkdownType, b.Text, false, false)
		var fields []*slack.TextBlockObject
		for _, f := range b.Fields {
			fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, f, false, false))
		}
		return slack.NewSectionBlock(text, fields, nil)
	case KindHeader:
		return slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, b.Text, false, false))
	case KindImage:
		var title *slack.TextBlockObject
		if b.Title != "" {
			title = slack.NewTextBlockObject(slack.PlainTextType, b.Title, false, false)
		}
		return slack.NewImageBlock(b.URL, b.AltText, "", title)
	case KindDivider:
		return slack.NewDividerBlock()
	}
	return nil
}

// MarshalJSON encodes b as a Block Kit block.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Slack())
}

// List is an ordered block sequence.
type List []Block

// Slack converts the list to a Block Kit block set, skipping zero blocks.
func (l List) Slack() slack.Blocks {
	set := make([]slack.Block, 0, len(l))
	for _, b := range l {
		if sb := b.Slack(); sb != nil {
			set = append(set, sb)
		}
	}
	return slack.Blocks{BlockSet: set}
}

// MarshalJSON encodes the list as a Block Kit array.
func (l List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Slack())
}

// Package token defines the document tree handed from the Markdown lexer to
// the block translator.
package token

// Kind tags a Token with the construct it represents.
type Kind int

const (
	KindInvalid Kind = iota

	// Block kinds
	KindHeading
	KindParagraph
	KindList
	KindListItem
	KindTable
	KindTableRow
	KindTableCell
	KindBlockquote
	KindCode
	KindThematicBreak
	KindHTML

	// Inline kinds
	KindText
	KindEmphasis
	KindStrong
	KindDelete
	KindLineBreak
	KindImage
	KindCodeSpan
	KindLink
	KindRawHTML
)

var kindNames = map[Kind]string{
	KindInvalid:       "invalid",
	KindHeading:       "heading",
	KindParagraph:     "paragraph",
	KindList:          "list",
	KindListItem:      "list_item",
	KindTable:         "table",
	KindTableRow:      "table_row",
	KindTableCell:     "table_cell",
	KindBlockquote:    "blockquote",
	KindCode:          "code",
	KindThematicBreak: "thematic_break",
	KindHTML:          "html",
	KindText:          "text",
	KindEmphasis:      "emphasis",
	KindStrong:        "strong",
	KindDelete:        "delete",
	KindLineBreak:     "line_break",
	KindImage:         "image",
	KindCodeSpan:      "code_span",
	KindLink:          "link",
	KindRawHTML:       "raw_html",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsInline reports whether k is a phrasing-level kind.
func (k Kind) IsInline() bool {
	return k >= KindText
}

// Check is the tri-state task-list marker of a list item.
type Check int

const (
	CheckUnset Check = iota
	CheckFalse
	CheckTrue
)

// CheckOf converts a parsed checkbox state to a Check.
func CheckOf(checked bool) Check {
	if checked {
		return CheckTrue
	}
	return CheckFalse
}

// Token is one node of the document tree. Which fields are meaningful
// depends on Kind:
//
//	Heading     Level, Children (inline)
//	Paragraph   Children (inline)
//	List        Ordered, Children (ListItem)
//	ListItem    Checked, Children (block)
//	Table       Children (TableRow, the first has Header set)
//	TableRow    Header, Children (TableCell)
//	TableCell   Children (inline)
//	Blockquote  Children (block)
//	Code        Lang, Text
//	HTML        Raw
//	Text        Text
//	CodeSpan    Text
//	RawHTML     Raw
//	Link        URL, Title, Children (inline)
//	Image       URL, Title, Text (alt), Children (inline)
//	Emphasis, Strong, Delete  Children (inline)
type Token struct {
	Kind     Kind
	Raw      string
	Text     string
	Children []Token

	URL   string
	Title string

	Lang    string
	Level   int
	Ordered bool
	Checked Check
	Header  bool
}

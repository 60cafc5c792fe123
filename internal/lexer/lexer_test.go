package lexer

import (
	"strings"
	"testing"

	"github.com/samsaffron/md2blocks/internal/token"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := New().Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", src, err)
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexBlockKinds(t *testing.T) {
	src := "# Title\n\npara\n\n- a\n\n> quote\n\n```sh\nls\n```\n\n---\n\n| a |\n|---|\n| 1 |\n\n<img src=\"x.png\">\n"
	got := kinds(lex(t, src))
	want := []token.Kind{
		token.KindHeading,
		token.KindParagraph,
		token.KindList,
		token.KindBlockquote,
		token.KindCode,
		token.KindThematicBreak,
		token.KindTable,
		token.KindHTML,
	}
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kind[%d] = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLexHeadingLevel(t *testing.T) {
	toks := lex(t, "### three")
	if len(toks) != 1 || toks[0].Level != 3 {
		t.Fatalf("unexpected heading tokens: %+v", toks)
	}
}

func TestLexCode(t *testing.T) {
	toks := lex(t, "```go\nfmt.Println(1)\n```")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	code := toks[0]
	if code.Lang != "go" {
		t.Errorf("Lang = %q, want %q", code.Lang, "go")
	}
	if code.Text != "fmt.Println(1)" {
		t.Errorf("Text = %q, want %q", code.Text, "fmt.Println(1)")
	}
}

func TestLexInlineKinds(t *testing.T) {
	toks := lex(t, "*a* **b** ~~c~~ `d` [e](https://e.example) ![f](https://f.example/f.png \"F\")")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	seen := map[token.Kind]token.Token{}
	for _, child := range toks[0].Children {
		seen[child.Kind] = child
	}
	for _, k := range []token.Kind{token.KindEmphasis, token.KindStrong, token.KindDelete, token.KindCodeSpan, token.KindLink, token.KindImage} {
		if _, ok := seen[k]; !ok {
			t.Errorf("missing inline kind %v in %+v", k, toks[0].Children)
		}
	}
	if got := seen[token.KindCodeSpan].Text; got != "d" {
		t.Errorf("code span text = %q, want %q", got, "d")
	}
	if got := seen[token.KindLink].URL; got != "https://e.example" {
		t.Errorf("link URL = %q", got)
	}
	img := seen[token.KindImage]
	if img.URL != "https://f.example/f.png" || img.Title != "F" || img.Text != "f" {
		t.Errorf("image = %+v", img)
	}
}

func TestLexTextIsDecodedNotEscaped(t *testing.T) {
	toks := lex(t, `a &amp; b \* c &#39;`)
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	var s string
	for _, child := range toks[0].Children {
		s += child.Text
	}
	if s != "a & b * c '" {
		t.Fatalf("text = %q, want %q", s, "a & b * c '")
	}
}

func TestLexSoftAndHardBreaks(t *testing.T) {
	toks := lex(t, "one\ntwo  \nthree")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	var breaks int
	var s string
	for _, child := range toks[0].Children {
		if child.Kind == token.KindLineBreak {
			breaks++
		}
		s += strings.TrimRight(child.Text, " ")
	}
	if breaks != 1 {
		t.Errorf("hard breaks = %d, want 1", breaks)
	}
	if s != "one\ntwothree" {
		t.Errorf("text = %q, want %q", s, "one\ntwothree")
	}
}

func TestLexListItems(t *testing.T) {
	toks := lex(t, "- [x] done\n- [ ] open\n- plain")
	if len(toks) != 1 || toks[0].Kind != token.KindList {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	list := toks[0]
	if list.Ordered {
		t.Error("bullet list reported as ordered")
	}
	want := []token.Check{token.CheckTrue, token.CheckFalse, token.CheckUnset}
	if len(list.Children) != len(want) {
		t.Fatalf("got %d items, want %d", len(list.Children), len(want))
	}
	for i, item := range list.Children {
		if item.Checked != want[i] {
			t.Errorf("item %d Checked = %v, want %v", i, item.Checked, want[i])
		}
	}

	ordered := lex(t, "1. a\n2. b")
	if len(ordered) != 1 || !ordered[0].Ordered {
		t.Fatalf("expected ordered list, got %+v", ordered)
	}
}

func TestLexTable(t *testing.T) {
	toks := lex(t, "| h1 | h2 |\n|----|----|\n| a | b |\n| c | d |")
	if len(toks) != 1 || toks[0].Kind != token.KindTable {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	rows := toks[0].Children
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if !rows[0].Header || rows[1].Header || rows[2].Header {
		t.Fatalf("header flags wrong: %v %v %v", rows[0].Header, rows[1].Header, rows[2].Header)
	}
	for _, row := range rows {
		if len(row.Children) != 2 {
			t.Fatalf("row has %d cells, want 2", len(row.Children))
		}
	}
}

func TestLexHTMLBlockRaw(t *testing.T) {
	toks := lex(t, `<img src="https://example.com/a.png" alt="A">`)
	if len(toks) != 1 || toks[0].Kind != token.KindHTML {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	if toks[0].Raw == "" {
		t.Fatal("html block has no raw source")
	}
}

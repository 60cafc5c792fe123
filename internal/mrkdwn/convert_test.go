package mrkdwn

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samsaffron/md2blocks/internal/blocks"
	"github.com/samsaffron/md2blocks/internal/token"
)

func convert(t *testing.T, md string, opts Options) []blocks.Block {
	t.Helper()
	got, err := Convert(context.Background(), md, opts)
	if err != nil {
		t.Fatalf("Convert(%q) error: %v", md, err)
	}
	return got
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []blocks.Block
	}{
		{
			name:  "plain text only escapes reserved characters",
			input: "Fish & chips > salad",
			want:  []blocks.Block{blocks.Section("Fish &amp; chips &gt; salad")},
		},
		{
			name:  "strong",
			input: "**bold**",
			want:  []blocks.Block{blocks.Section("*bold*")},
		},
		{
			name:  "emphasis",
			input: "_em_",
			want:  []blocks.Block{blocks.Section("_em_")},
		},
		{
			name:  "nested emphasis inside strong",
			input: "**_d_ e**",
			want:  []blocks.Block{blocks.Section("*_d_ e*")},
		},
		{
			name:  "strikethrough",
			input: "~~gone~~",
			want:  []blocks.Block{blocks.Section("~gone~")},
		},
		{
			name:  "code span escapes its content",
			input: "use `a<b` here",
			want:  []blocks.Block{blocks.Section("use `a&lt;b` here")},
		},
		{
			name:  "link keeps trailing space",
			input: "[label](https://example.com)",
			want:  []blocks.Block{blocks.Section("<https://example.com|label> ")},
		},
		{
			name:  "styled link label",
			input: "see [**docs**](https://example.com/docs)",
			want:  []blocks.Block{blocks.Section("see <https://example.com/docs|*docs*> ")},
		},
		{
			name:  "bare url is linkified",
			input: "go to https://example.com",
			want:  []blocks.Block{blocks.Section("go to <https://example.com|https://example.com> ")},
		},
		{
			name:  "soft line break stays a newline",
			input: "first\nsecond",
			want:  []blocks.Block{blocks.Section("first\nsecond")},
		},
		{
			name:  "consecutive paragraphs stay separate",
			input: "one\n\ntwo",
			want:  []blocks.Block{blocks.Section("one"), blocks.Section("two")},
		},
		{
			name:  "heading drops styling",
			input: "# Hello **big** `world`",
			want:  []blocks.Block{blocks.Header("Hello big world")},
		},
		{
			name:  "all heading levels are headers",
			input: "### Deep",
			want:  []blocks.Block{blocks.Header("Deep")},
		},
		{
			name:  "fenced code drops language",
			input: "```go\nif a < b {\n}\n```",
			want:  []blocks.Block{blocks.Section("```\nif a &lt; b {\n}\n```")},
		},
		{
			name:  "ordered list",
			input: "1. a\n2. b",
			want:  []blocks.Block{blocks.Section("1. a\n2. b")},
		},
		{
			name:  "ordered list numbers from one",
			input: "5. a\n6. b",
			want:  []blocks.Block{blocks.Section("1. a\n2. b")},
		},
		{
			name:  "unordered list",
			input: "- a\n- b",
			want:  []blocks.Block{blocks.Section("• a\n• b")},
		},
		{
			name:  "styled list items",
			input: "- **a**\n- `b`",
			want:  []blocks.Block{blocks.Section("• *a*\n• `b`")},
		},
		{
			name:  "task list without prefix function uses bullet",
			input: "- [ ] todo\n- [x] done",
			want:  []blocks.Block{blocks.Section("• todo\n• done")},
		},
		{
			name:  "images in list items are dropped",
			input: "- see ![pic](https://example.com/p.png)",
			want:  []blocks.Block{blocks.Section("• see ")},
		},
		{
			name:  "nested list is not rendered",
			input: "- outer\n  - inner",
			want:  []blocks.Block{blocks.Section("• outer")},
		},
		{
			name:  "table becomes a grid",
			input: "| A | B |\n|---|---|\n| 1 | 22 |",
			want:  []blocks.Block{blocks.Section("```\nA  B\n-  --\n1  22\n```")},
		},
		{
			name:  "table cells drop styling",
			input: "| Name | Note |\n|---|---|\n| **x** | a & b |",
			want:  []blocks.Block{blocks.Section("```\nName  Note\n----  -----\nx     a &amp; b\n```")},
		},
		{
			name:  "blockquote prefixes multi-line paragraphs",
			input: "> first line\n> second line",
			want:  []blocks.Block{blocks.Section("> first line\n> second line")},
		},
		{
			name:  "blockquote paragraphs become separate sections",
			input: "> one\n> two\n>\n> three\n> four",
			want: []blocks.Block{
				blocks.Section("> one\n> two"),
				blocks.Section("> three\n> four"),
			},
		},
		{
			name:  "single-line blockquote section has no newline to prefix",
			input: "> solo",
			want:  []blocks.Block{blocks.Section("solo")},
		},
		{
			name:  "blockquote drops non-paragraph children",
			input: "> - a\n> - b\n>\n> kept",
			want:  []blocks.Block{blocks.Section("kept")},
		},
		{
			name:  "image splits the paragraph",
			input: "before ![alt](https://example.com/i.png) after",
			want: []blocks.Block{
				blocks.Section("before "),
				blocks.Image("https://example.com/i.png", "alt", ""),
				blocks.Section(" after"),
			},
		},
		{
			name:  "image alt falls back to title",
			input: `![](https://example.com/i.png "A title")`,
			want:  []blocks.Block{blocks.Image("https://example.com/i.png", "A title", "A title")},
		},
		{
			name:  "image alt falls back to url",
			input: "![](https://example.com/i.png)",
			want:  []blocks.Block{blocks.Image("https://example.com/i.png", "https://example.com/i.png", "")},
		},
		{
			name:  "thematic break",
			input: "a\n\n---\n\nb",
			want:  []blocks.Block{blocks.Section("a"), blocks.Divider(), blocks.Section("b")},
		},
		{
			name:  "html image block",
			input: `<img src="https://example.com/h.png" alt="Logo">`,
			want:  []blocks.Block{blocks.Image("https://example.com/h.png", "Logo", "")},
		},
		{
			name:  "html image without alt uses src",
			input: `<img src="https://example.com/h.png">`,
			want:  []blocks.Block{blocks.Image("https://example.com/h.png", "https://example.com/h.png", "")},
		},
		{
			name:  "other html blocks are dropped",
			input: "<div>\nhello\n</div>",
			want:  nil,
		},
		{
			name:  "quotes and apostrophes stay literal",
			input: `It's "fine"`,
			want:  []blocks.Block{blocks.Section(`It's "fine"`)},
		},
		{
			name:  "empty document",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convert(t, tt.input, Options{})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Convert(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestConvertCheckboxPrefix(t *testing.T) {
	opts := Options{CheckboxPrefix: func(checked bool) string {
		if checked {
			return "☑ "
		}
		return "☐ "
	}}
	got := convert(t, "- [ ] false text\n- [x] true text\n- plain", opts)
	want := []blocks.Block{blocks.Section("☐ false text\n☑ true text\n• plain")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertOrderedTaskListIgnoresCheckbox(t *testing.T) {
	opts := Options{CheckboxPrefix: func(bool) string { return "X " }}
	got := convert(t, "1. [x] done", opts)
	if len(got) != 1 {
		t.Fatalf("got %d blocks, want 1", len(got))
	}
	if text := got[0].Text; text != "1. done" && text != "1. [x] done" {
		t.Fatalf("ordered task item = %q, want numbered prefix", text)
	}
}

func TestConvertMaxCellWidth(t *testing.T) {
	got := convert(t, "| h |\n|---|\n| abcdef |", Options{MaxCellWidth: 3})
	want := []blocks.Block{blocks.Section("```\nh\n---\nabc\n```")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertIdempotentOnPlainText(t *testing.T) {
	inputs := []string{
		"a plain sentence",
		"a &amp; b &lt; c",
		"it's a \"quote\"",
	}
	for _, in := range inputs {
		first := convert(t, in, Options{})
		if len(first) != 1 {
			t.Fatalf("Convert(%q) = %d blocks, want 1", in, len(first))
		}
		second := convert(t, first[0].Text, Options{})
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("second pass over %q changed output (-first +second):\n%s", in, diff)
		}
	}
}

type failingLexer struct{ err error }

func (f failingLexer) Lex(string) ([]token.Token, error) { return nil, f.err }

func TestConvertPropagatesLexerError(t *testing.T) {
	cause := errors.New("boom")
	_, err := Convert(context.Background(), "text", Options{Lexer: failingLexer{err: cause}})
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapped %v", err, cause)
	}
}

func TestConvertCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Convert(ctx, "text", Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestConvertConcurrentCalls(t *testing.T) {
	const md = "# Title\n\n- a\n- b\n\n| x | y |\n|---|---|\n| 1 | 2 |"
	want := convert(t, md, Options{})
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			got, err := Convert(context.Background(), md, Options{})
			if err == nil && !cmp.Equal(want, got) {
				err = errors.New("concurrent result differs")
			}
			errs <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-errs; err != nil {
			t.Fatal(err)
		}
	}
}

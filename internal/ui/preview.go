package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/samsaffron/md2blocks/internal/blocks"
)

const defaultPreviewWidth = 80

var (
	// <url|label> and <url> in mrkdwn
	mrkdwnLink = regexp.MustCompile(`<([^<>|]+)\|([^<>]*)>`)
	mrkdwnURL  = regexp.MustCompile(`<([^<>|]+)>`)

	mrkdwnUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")
)

// RenderPreview renders blocks approximately as Slack would show them, one
// block per paragraph. Lines are wrapped to width except inside code fences.
func RenderPreview(bs []blocks.Block, width int, styles *Styles) string {
	if width <= 0 {
		width = defaultPreviewWidth
	}
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		switch b.Kind {
		case blocks.KindHeader:
			parts = append(parts, renderLines(styles.Header, ansi.Wordwrap(b.Text, width, "")))
		case blocks.KindSection:
			text := renderSection(b.Text, width, styles)
			for _, f := range b.Fields {
				text += "\n" + renderSection(f, width, styles)
			}
			parts = append(parts, text)
		case blocks.KindImage:
			line := styles.Image.Render("🖼 " + b.AltText + " <" + b.URL + ">")
			if b.Title != "" {
				line += "\n" + renderLines(styles.Muted, b.Title)
			}
			parts = append(parts, line)
		case blocks.KindDivider:
			parts = append(parts, styles.Divider.Render(strings.Repeat("─", width)))
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderSection(text string, width int, styles *Styles) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
			out = append(out, styles.Muted.Render(line))
			continue
		}
		if inFence {
			out = append(out, styles.Code.Render(unescapeMrkdwn(line)))
			continue
		}
		style := styles.Body
		if strings.HasPrefix(line, "> ") {
			style = styles.Quote
		}
		out = append(out, renderLines(style, ansi.Wordwrap(displayText(line), width, "")))
	}
	return strings.Join(out, "\n")
}

// renderLines styles each line on its own so lipgloss does not pad short
// lines to the width of the longest.
func renderLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = style.Render(l)
	}
	return strings.Join(lines, "\n")
}

// displayText turns mrkdwn links into "label (url)" and decodes the
// control-character escapes.
func displayText(s string) string {
	s = mrkdwnLink.ReplaceAllString(s, "$2 ($1)")
	s = mrkdwnURL.ReplaceAllString(s, "$1")
	return unescapeMrkdwn(s)
}

func unescapeMrkdwn(s string) string {
	return mrkdwnUnescaper.Replace(s)
}

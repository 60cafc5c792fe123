package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type rendererKey struct {
	width int
	theme Theme
}

// rendererCache provides width- and theme-keyed caching of glamour renderers.
var rendererCache sync.Map // map[rendererKey]*glamour.TermRenderer

func getRenderer(width int, theme *Theme) (*glamour.TermRenderer, error) {
	key := rendererKey{width: width, theme: *theme}
	if cached, ok := rendererCache.Load(key); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(GlamourStyleFromTheme(theme)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(key, renderer)
	return renderer, nil
}

// RenderMarkdown renders Markdown source for the terminal, used to show the
// input next to its converted blocks.
func RenderMarkdown(content string, width int, theme *Theme) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	if theme == nil {
		theme = DefaultTheme()
	}
	renderer, err := getRenderer(width, theme)
	if err != nil {
		return "", err
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(rendered), nil
}

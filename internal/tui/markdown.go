package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownWrapWidth is the word-wrap width for rendered markdown.
const MarkdownWrapWidth = 80

//nolint:gochecknoglobals // cached renderer
var (
	markdownRenderer     *glamour.TermRenderer
	markdownRendererOnce sync.Once
)

func getMarkdownRenderer() *glamour.TermRenderer {
	markdownRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(MarkdownWrapWidth),
		)
		if err == nil {
			markdownRenderer = r
		}
	})
	return markdownRenderer
}

// RenderMarkdown renders assistant output for the terminal. Plain text is
// returned unchanged when colors are disabled or rendering fails.
func RenderMarkdown(content string) string {
	if strings.TrimSpace(content) == "" || !HasColorSupport() {
		return content
	}

	r := getMarkdownRenderer()
	if r == nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

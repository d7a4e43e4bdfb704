package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

type goldmarkRenderer struct {
	md goldmark.Markdown
}

func newGoldmark(style *chroma.Style) *goldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
			highlighting.NewHighlighting(
				highlighting.WithCustomStyle(style),
				highlighting.WithGuessLanguage(true),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	return &goldmarkRenderer{md: md}
}

func (r *goldmarkRenderer) Engine() string {
	return EngineGoldmark
}

func (r *goldmarkRenderer) Render(content string) (template.HTML, error) {
	if content == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}

	return template.HTML(buf.String()), nil
}

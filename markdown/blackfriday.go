package markdown

import (
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/russross/blackfriday/v2"
)

type blackfridayRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func newBlackfriday(style *chroma.Style) *blackfridayRenderer {
	return &blackfridayRenderer{
		style:     style,
		formatter: newFormatter(),
	}
}

func (r *blackfridayRenderer) Engine() string {
	return EngineBlackfriday
}

func (r *blackfridayRenderer) Render(content string) (template.HTML, error) {
	if content == "" {
		return "", nil
	}

	// The HTML renderer keeps heading ids between nodes, so each call gets
	// its own.
	hr := &codeRenderer{
		HTMLRenderer: blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
			Flags: blackfriday.CommonHTMLFlags | blackfriday.SkipHTML,
		}),
		style:     r.style,
		formatter: r.formatter,
	}

	b := blackfriday.Run(
		[]byte(content),
		blackfriday.WithRenderer(hr),
		blackfriday.WithExtensions(blackfriday.CommonExtensions),
	)

	return template.HTML(b), nil
}

type codeRenderer struct {
	*blackfriday.HTMLRenderer
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func (r *codeRenderer) RenderNode(w io.Writer, node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	if node.Type != blackfriday.CodeBlock {
		return r.HTMLRenderer.RenderNode(w, node, entering)
	}

	lang := ""
	if fs := strings.Fields(string(node.CodeBlockData.Info)); len(fs) > 0 {
		lang = fs[0]
	}

	if err := highlight(w, r.formatter, r.style, lang, string(node.Literal)); err != nil {
		io.WriteString(w, "<pre><code>")
		io.WriteString(w, html.EscapeString(string(node.Literal)))
		io.WriteString(w, "</code></pre>\n")
	}

	return blackfriday.GoToNext
}

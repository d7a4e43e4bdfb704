// Package markdown renders post bodies for the live preview.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	EngineBlackfriday = "blackfriday"
	EngineGoldmark    = "goldmark"
)

// Renderer converts markdown to HTML. Implementations keep no state between
// calls and are safe for concurrent use.
type Renderer interface {
	Engine() string
	Render(content string) (template.HTML, error)
}

type Config struct {
	Engine string `mapstructure:"engine"`
	Style  string `mapstructure:"style"`
}

// New returns the renderer named by c.Engine. An empty engine means
// blackfriday.
func New(c Config) (Renderer, error) {
	style := styles.Get(c.Style)
	if c.Style == "" {
		style = styles.Get("github")
	}

	switch strings.ToLower(c.Engine) {
	case "", EngineBlackfriday:
		return newBlackfriday(style), nil
	case EngineGoldmark:
		return newGoldmark(style), nil
	}

	return nil, fmt.Errorf("unknown markdown engine %q", c.Engine)
}

// Stylesheet writes the CSS for the highlighting classes of the style.
func Stylesheet(w io.Writer, style string) error {
	s := styles.Get(style)
	if style == "" {
		s = styles.Get("github")
	}

	return newFormatter().WriteCSS(w, s)
}

func newFormatter() *chromahtml.Formatter {
	return chromahtml.New(chromahtml.WithClasses(true))
}

func lexerFor(lang, code string) chroma.Lexer {
	var l chroma.Lexer
	if lang != "" {
		l = lexers.Get(lang)
	}

	if l == nil {
		l = lexers.Analyse(code)
	}

	if l == nil {
		l = lexers.Fallback
	}

	return chroma.Coalesce(l)
}

func highlight(w io.Writer, f *chromahtml.Formatter, s *chroma.Style, lang, code string) error {
	it, err := lexerFor(lang, code).Tokenise(nil, code)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := f.Format(&buf, s, it); err != nil {
		return err
	}

	_, err = buf.WriteTo(w)

	return err
}

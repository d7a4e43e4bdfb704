package markdown

import (
	"encoding/base64"
	"encoding/binary"
	"html/template"

	"github.com/cespare/xxhash/v2"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"

	"github.com/air-examples/composer/metrics"
)

var minifier = minify.New()

func init() {
	minifier.Add("text/html", &html.Minifier{
		KeepEndTags:      true,
		KeepDocumentTags: true,
	})
}

// Preview is a rendered post body ready to be sent to the page.
type Preview struct {
	HTML template.HTML
	ETag string
}

// BuildPreview renders content with r and minifies the result.
func BuildPreview(r Renderer, content string) (Preview, error) {
	h, err := r.Render(content)
	if err != nil {
		return Preview{}, err
	}

	metrics.PreviewRenders.WithLabelValues(r.Engine()).Inc()

	s, err := minifier.String("text/html", string(h))
	if err != nil {
		return Preview{}, err
	}

	d := make([]byte, 8)
	binary.BigEndian.PutUint64(d, xxhash.Sum64String(s))

	return Preview{
		HTML: template.HTML(s),
		ETag: "\"" + base64.StdEncoding.EncodeToString(d) + "\"",
	}, nil
}

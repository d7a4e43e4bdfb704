package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/aofei/air"

	"github.com/air-examples/composer/markdown"
)

func (c *Composer) previewHandler(req *air.Request, res *air.Response) error {
	content := ""
	if s := c.existingSession(req); s != nil {
		content = s.Snapshot().Content
	}

	p, err := markdown.BuildPreview(c.Renderer, content)
	if err != nil {
		return err
	}

	res.Header.Set("Content-Type", "text/html; charset=utf-8")
	res.Header.Set("Cache-Control", "no-cache")
	res.Header.Set("ETag", p.ETag)

	if req.Header.Get("If-None-Match") == p.ETag {
		res.Status = http.StatusNotModified
		return res.Write(strings.NewReader(""))
	}

	return res.Write(strings.NewReader(string(p.HTML)))
}

func (c *Composer) stylesheetHandler(req *air.Request, res *air.Response) error {
	buf := bytes.Buffer{}
	if err := markdown.Stylesheet(&buf, c.Style); err != nil {
		return err
	}

	res.Header.Set("Content-Type", "text/css; charset=utf-8")

	return res.Write(bytes.NewReader(buf.Bytes()))
}

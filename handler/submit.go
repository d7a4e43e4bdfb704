package handler

import (
	"net/http"

	"github.com/aofei/air"

	"github.com/air-examples/composer/catalog"
	"github.com/air-examples/composer/form"
	"github.com/air-examples/composer/markdown"
	"github.com/air-examples/composer/model"
	"github.com/air-examples/composer/notify"
)

func (c *Composer) submitPageHandler(req *air.Request, res *air.Response) error {
	l := locale(req)

	s := c.existingSession(req)
	if s == nil && req.Method == http.MethodGet {
		s = c.session(req, res)
	}

	snap := form.Snapshot{Tags: []model.Tag{}}
	limits := c.Store.Limits()
	if s != nil {
		s.Do(func(f *form.Form) {
			snap = f.Snapshot()
			limits = f.Limits()
		})
	}

	p, err := markdown.BuildPreview(c.Renderer, snap.Content)
	if err != nil {
		return err
	}

	selected := make(map[string]bool, len(snap.Tags))
	for _, t := range snap.Tags {
		selected[string(t)] = true
	}

	cat := c.Catalog.Catalog()

	return res.Render(map[string]interface{}{
		"PageTitle":      model.MsgPageTitle.String(l),
		"CanonicalPath":  "/posts/submit",
		"IsSubmitPage":   true,
		"Form":           snap,
		"Limits":         limits,
		"Categories":     catalog.Localize(cat.Categories(), l),
		"Tags":           catalog.Localize(cat.TagOptions(), l),
		"SelectedTags":   selected,
		"Preview":        p.HTML,
		"PreviewHeading": model.MsgPreviewHeading.String(l),
		"Labels": map[string]string{
			"Category":            model.MsgCategoryLabel.String(l),
			"CategoryPlaceholder": model.MsgCategoryPlaceholder.String(l),
			"Title":               model.MsgTitleLabel.String(l),
			"Description":         model.MsgDescriptionLabel.String(l),
			"ContentPlaceholder":  model.MsgContentPlaceholder.String(l),
			"Tags":                model.MsgTagsLabel.String(l),
			"Submit":              model.MsgSubmitButton.String(l),
		},
	}, "submit.html", "layouts/default.html")
}

type submitResponse struct {
	OK            bool             `json:"ok"`
	ID            string           `json:"id"`
	Notifications []notify.Message `json:"notifications"`
}

// submitHandler posts the session's form to the forum API. The session is
// only locked while the snapshot is taken, so submissions may overlap.
func (c *Composer) submitHandler(req *air.Request, res *air.Response) error {
	snap := c.session(req, res).Snapshot()

	var n notify.Toaster
	p, err := c.Client.Submit(req.Context, &n, snap, username(req))

	if err != nil {
		res.Status = http.StatusBadGateway
	}

	return res.WriteJSON(submitResponse{
		OK:            err == nil,
		ID:            p.ID,
		Notifications: n.Drain(locale(req)),
	})
}

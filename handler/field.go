package handler

import (
	"html/template"
	"net/http"

	"github.com/aofei/air"

	"github.com/air-examples/composer/form"
	"github.com/air-examples/composer/markdown"
	"github.com/air-examples/composer/model"
	"github.com/air-examples/composer/notify"
)

type fieldResponse struct {
	Accepted      bool             `json:"accepted"`
	Form          form.Snapshot    `json:"form"`
	Preview       template.HTML    `json:"preview,omitempty"`
	Notifications []notify.Message `json:"notifications"`
}

// fieldHandler applies one input event to the session's form.
func (c *Composer) fieldHandler(req *air.Request, res *air.Response) error {
	field := form.Field(paramString(req, "Field"))
	value := paramString(req, "value")

	var (
		category model.Category
		tags     []model.Tag
	)
	switch field {
	case form.FieldTitle, form.FieldDescription, form.FieldContent:
	case form.FieldCategory:
		var ok bool
		if category, ok = c.Catalog.Catalog().Category(value); !ok {
			return &httpError{
				Status:  http.StatusBadRequest,
				Message: "unknown category " + value,
			}
		}
	case form.FieldTags:
		var err error
		if tags, err = c.Catalog.Catalog().Tags(paramStrings(req, "value")); err != nil {
			return &httpError{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			}
		}
	default:
		return &httpError{
			Status:  http.StatusNotFound,
			Message: "unknown field " + string(field),
		}
	}

	var (
		n    notify.Toaster
		err  error
		snap form.Snapshot
	)
	c.session(req, res).Do(func(f *form.Form) {
		switch field {
		case form.FieldTitle:
			err = f.SetTitle(&n, value)
		case form.FieldDescription:
			err = f.SetDescription(&n, value)
		case form.FieldContent:
			f.SetContent(value)
		case form.FieldCategory:
			f.SetCategory(category)
		case form.FieldTags:
			f.SetTags(tags)
		}

		snap = f.Snapshot()
	})

	r := fieldResponse{
		Accepted: err == nil,
		Form:     snap,
	}

	if field == form.FieldContent {
		p, err := markdown.BuildPreview(c.Renderer, snap.Content)
		if err != nil {
			return err
		}

		r.Preview = p.HTML
	}

	r.Notifications = n.Drain(locale(req))

	return res.WriteJSON(r)
}

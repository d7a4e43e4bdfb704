// Package form holds the state of the post composer.
package form

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/air-examples/composer/metrics"
	"github.com/air-examples/composer/model"
	"github.com/air-examples/composer/notify"
)

type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldContent     Field = "content"
	FieldCategory    Field = "category"
	FieldTags        Field = "tags"
)

// Limits are the character budgets of the bounded fields.
type Limits struct {
	Title       int
	Description int
}

var DefaultLimits = Limits{Title: 23, Description: 100}

// LimitError reports a value rejected for being longer than its field allows.
type LimitError struct {
	Field Field
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s exceeds %d characters", e.Field, e.Limit)
}

var validate = validator.New()

// Form is the composer state. It is not safe for concurrent use; the owning
// Session serializes access.
type Form struct {
	limits      Limits
	title       string
	description string
	content     string
	category    model.Category
	tags        []model.Tag
}

func New(limits Limits) *Form {
	if limits.Title <= 0 {
		limits.Title = DefaultLimits.Title
	}

	if limits.Description <= 0 {
		limits.Description = DefaultLimits.Description
	}

	return &Form{limits: limits}
}

func (f *Form) Limits() Limits {
	return f.limits
}

// SetTitle stores the title unless it is longer than the title limit, in which
// case the previous title is kept and n is told why.
func (f *Form) SetTitle(n notify.Notifier, title string) error {
	if err := f.check(n, FieldTitle, title, f.limits.Title, model.MsgTitleTooLong); err != nil {
		return err
	}

	f.title = title
	metrics.FieldEdits.WithLabelValues(string(FieldTitle)).Inc()

	return nil
}

// SetDescription is SetTitle for the description.
func (f *Form) SetDescription(n notify.Notifier, description string) error {
	if err := f.check(n, FieldDescription, description, f.limits.Description, model.MsgDescriptionTooLong); err != nil {
		return err
	}

	f.description = description
	metrics.FieldEdits.WithLabelValues(string(FieldDescription)).Inc()

	return nil
}

func (f *Form) SetContent(content string) {
	f.content = content
	metrics.FieldEdits.WithLabelValues(string(FieldContent)).Inc()
}

func (f *Form) SetCategory(c model.Category) {
	f.category = c
	metrics.FieldEdits.WithLabelValues(string(FieldCategory)).Inc()
}

// SetTags replaces the selected tags. Repeated tags are kept once, at their
// first position.
func (f *Form) SetTags(tags []model.Tag) {
	seen := make(map[model.Tag]struct{}, len(tags))
	ts := make([]model.Tag, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}

		seen[t] = struct{}{}
		ts = append(ts, t)
	}

	f.tags = ts
	metrics.FieldEdits.WithLabelValues(string(FieldTags)).Inc()
}

func (f *Form) check(n notify.Notifier, field Field, v string, limit int, msg model.Text) error {
	if err := validate.Var(v, fmt.Sprintf("max=%d", limit)); err == nil {
		return nil
	}

	if n == nil {
		n = notify.Discard
	}

	n.Dismiss()
	n.Error(msg, limit)
	metrics.LimitRejections.WithLabelValues(string(field)).Inc()

	return &LimitError{Field: field, Limit: limit}
}

// Snapshot is a copy of the form state.
type Snapshot struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Category    model.Category `json:"category"`
	Tags        []model.Tag    `json:"tags"`
}

func (f *Form) Snapshot() Snapshot {
	return Snapshot{
		Title:       f.title,
		Description: f.description,
		Content:     f.content,
		Category:    f.category,
		Tags:        append([]model.Tag{}, f.tags...),
	}
}

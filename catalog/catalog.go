// Package catalog defines the categories and tags a post can carry.
package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/air-examples/composer/model"
)

type Entry struct {
	Key    string            `toml:"key"`
	Labels map[string]string `toml:"labels"`
}

type file struct {
	FallbackLocale string  `toml:"fallback_locale"`
	Categories     []Entry `toml:"categories"`
	Tags           []Entry `toml:"tags"`
}

// Option is a localizable choice shown on the page.
type Option struct {
	Key   string
	Label model.Text
}

// Catalog is an immutable set of categories and tags.
type Catalog struct {
	categories []Option
	tags       []Option
	byCategory map[model.Category]int
	byTag      map[model.Tag]int
}

// Default is the catalog used when no catalog file is configured.
var Default = mustBuild(file{
	FallbackLocale: "zh",
	Categories: []Entry{
		{Key: string(model.CategoryCompetition), Labels: map[string]string{"zh": "竞赛发布", "en": "Competitions"}},
		{Key: string(model.CategoryResource), Labels: map[string]string{"zh": "资源分享", "en": "Resources"}},
		{Key: string(model.CategoryTeam), Labels: map[string]string{"zh": "队员招募", "en": "Team recruiting"}},
	},
	Tags: []Entry{
		{Key: string(model.TagMath), Labels: map[string]string{"zh": "数学", "en": "Math"}},
		{Key: string(model.TagComputer), Labels: map[string]string{"zh": "计算机", "en": "Computing"}},
		{Key: string(model.TagEco), Labels: map[string]string{"zh": "金融", "en": "Finance"}},
	},
})

// Load parses the catalog file at path. An empty path returns Default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default, nil
	}

	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}

	return build(f)
}

func mustBuild(f file) *Catalog {
	c, err := build(f)
	if err != nil {
		panic(err)
	}

	return c
}

func build(f file) (*Catalog, error) {
	if f.FallbackLocale == "" {
		f.FallbackLocale = "zh"
	}

	c := &Catalog{
		byCategory: map[model.Category]int{},
		byTag:      map[model.Tag]int{},
	}

	for _, e := range f.Categories {
		k := model.Category(e.Key)
		if e.Key == "" {
			return nil, fmt.Errorf("category without key")
		} else if _, ok := c.byCategory[k]; ok {
			return nil, fmt.Errorf("duplicate category %q", e.Key)
		}

		c.byCategory[k] = len(c.categories)
		c.categories = append(c.categories, option(f.FallbackLocale, e))
	}

	for _, e := range f.Tags {
		k := model.Tag(e.Key)
		if e.Key == "" {
			return nil, fmt.Errorf("tag without key")
		} else if _, ok := c.byTag[k]; ok {
			return nil, fmt.Errorf("duplicate tag %q", e.Key)
		}

		c.byTag[k] = len(c.tags)
		c.tags = append(c.tags, option(f.FallbackLocale, e))
	}

	return c, nil
}

func option(fallback string, e Entry) Option {
	labels := e.Labels
	if len(labels) == 0 {
		labels = map[string]string{fallback: e.Key}
	}

	return Option{Key: e.Key, Label: model.NewText(fallback, labels)}
}

// Category returns the category with the key. The empty key is the
// unselected category and is always valid.
func (c *Catalog) Category(key string) (model.Category, bool) {
	if key == "" {
		return "", true
	}

	_, ok := c.byCategory[model.Category(key)]

	return model.Category(key), ok
}

// Tags resolves keys to tags, failing on the first unknown key.
func (c *Catalog) Tags(keys []string) ([]model.Tag, error) {
	ts := make([]model.Tag, 0, len(keys))
	for _, k := range keys {
		if _, ok := c.byTag[model.Tag(k)]; !ok {
			return nil, fmt.Errorf("unknown tag %q", k)
		}

		ts = append(ts, model.Tag(k))
	}

	return ts, nil
}

func (c *Catalog) Categories() []Option {
	return c.categories
}

func (c *Catalog) TagOptions() []Option {
	return c.tags
}

// Choice is an Option resolved for one locale.
type Choice struct {
	Key   string
	Label string
}

func Localize(opts []Option, locale string) []Choice {
	cs := make([]Choice, 0, len(opts))
	for _, o := range opts {
		cs = append(cs, Choice{Key: o.Key, Label: o.Label.String(locale)})
	}

	return cs
}

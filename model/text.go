package model

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

// Text is a message or label with one value per locale.
type Text struct {
	Tags    []language.Tag
	Matcher language.Matcher
	Values  map[string]string
}

// NewText builds a Text from values keyed by BCP 47 locale. The fallback
// locale wins when nothing else matches.
func NewText(fallback string, values map[string]string) Text {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k != fallback {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)
	if _, ok := values[fallback]; ok {
		keys = append([]string{fallback}, keys...)
	}

	t := Text{
		Tags:   make([]language.Tag, 0, len(keys)),
		Values: make(map[string]string, len(keys)),
	}
	for _, k := range keys {
		tag := language.Make(k)
		t.Tags = append(t.Tags, tag)
		t.Values[tag.String()] = values[k]
	}

	t.Matcher = language.NewMatcher(t.Tags)

	return t
}

// Verbatim returns a Text that reads s in every locale.
func Verbatim(s string) Text {
	return NewText("und", map[string]string{"und": s})
}

// String returns the value that best matches the locale, which may be an
// Accept-Language header value.
func (t Text) String(locale string) string {
	if len(t.Tags) == 0 {
		return ""
	}

	if len(t.Tags) == 1 {
		return t.Values[t.Tags[0].String()]
	}

	tags, _, _ := language.ParseAcceptLanguage(locale)
	_, i, _ := t.Matcher.Match(tags...)

	return t.Values[t.Tags[i].String()]
}

// Format is like String but treats the value as a format string.
func (t Text) Format(locale string, args ...interface{}) string {
	s := t.String(locale)
	if len(args) == 0 {
		return s
	}

	return fmt.Sprintf(s, args...)
}

package i18n

import (
	"golang.org/x/text/language"
)

// Matcher negotiates an Accept-Language header against the bundle languages.
type Matcher struct {
	matcher language.Matcher
	codes   []string
}

// NewMatcher builds a Matcher for the bundle. The fallback language is
// preferred when nothing matches.
func NewMatcher(b *Bundle) *Matcher {
	codes := []string{b.Fallback()}
	for _, l := range b.Languages() {
		if l != b.Fallback() {
			codes = append(codes, l)
		}
	}

	tags := make([]language.Tag, len(codes))
	for i, c := range codes {
		tags[i] = language.Make(c)
	}
	return &Matcher{matcher: language.NewMatcher(tags), codes: codes}
}

// Match returns the best supported language code for an Accept-Language value.
func (m *Matcher) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return m.codes[0]
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return m.codes[0]
	}
	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No {
		return m.codes[0]
	}
	return m.codes[idx]
}

// Supported reports whether code is one of the bundle languages.
func (m *Matcher) Supported(code string) bool {
	for _, c := range m.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Package i18n serves the locale bundles shared with the web client and
// translates API messages for the caller's language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/guardianlink/portal/internal/core/domain"
)

//go:embed locales/*.toml
var embedded embed.FS

// Bundle holds flattened key/value messages per language.
type Bundle struct {
	messages map[string]map[string]string
	langs    []string
	fallback string
}

// Load reads the locale files compiled into the binary.
func Load() (*Bundle, error) {
	return LoadFS(embedded, "locales", domain.DefaultLanguage)
}

// LoadFS reads every <lang>.toml file in dir. Nested tables are flattened
// into dotted keys ("login.title"). fallback must be one of the languages.
func LoadFS(fsys fs.FS, dir, fallback string) (*Bundle, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	b := &Bundle{messages: make(map[string]map[string]string), fallback: fallback}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".toml" {
			continue
		}
		lang := strings.TrimSuffix(e.Name(), ".toml")

		raw, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}
		var tree map[string]any
		if _, err := toml.Decode(string(raw), &tree); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}

		flat := make(map[string]string)
		flatten("", tree, flat)
		b.messages[lang] = flat
		b.langs = append(b.langs, lang)
	}

	if _, ok := b.messages[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q not found in %s", fallback, dir)
	}
	sort.Strings(b.langs)
	return b, nil
}

// Languages returns the available language codes, sorted.
func (b *Bundle) Languages() []string {
	out := make([]string, len(b.langs))
	copy(out, b.langs)
	return out
}

// Fallback is the language used when a key or language is missing.
func (b *Bundle) Fallback() string {
	return b.fallback
}

// Messages returns a copy of every message for lang.
func (b *Bundle) Messages(lang string) (map[string]string, error) {
	msgs, ok := b.messages[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLocaleNotFound, lang)
	}
	out := make(map[string]string, len(msgs))
	for k, v := range msgs {
		out[k] = v
	}
	return out, nil
}

// T translates key into lang, falling back to the fallback language and
// finally to the key itself. args are applied with fmt.Sprintf.
func (b *Bundle) T(lang, key string, args ...any) string {
	msg, ok := b.messages[lang][key]
	if !ok {
		msg, ok = b.messages[b.fallback][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

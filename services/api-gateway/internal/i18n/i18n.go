// Package i18n holds the translation dictionaries. A Translator is built once
// at startup and passed to whatever renders user-facing text.
package i18n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var locales embed.FS

type Translator struct {
	fallback string
	langs    []string
	dicts    map[string]map[string]string
	matcher  language.Matcher
}

// Load reads the bundled dictionaries. fallback is used for unknown languages
// and missing keys.
func Load(fallback string) (*Translator, error) {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	dicts := make(map[string]map[string]string, len(entries))
	for _, e := range entries {
		data, err := locales.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, err
		}
		var tree map[string]any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		dict := make(map[string]string)
		flatten("", tree, dict)
		dicts[strings.TrimSuffix(e.Name(), ".yaml")] = dict
	}
	return New(fallback, dicts)
}

// New builds a Translator from ready dictionaries keyed by language tag.
func New(fallback string, dicts map[string]map[string]string) (*Translator, error) {
	if _, ok := dicts[fallback]; !ok {
		return nil, fmt.Errorf("no dictionary for fallback language %q", fallback)
	}
	// The fallback goes first so the matcher prefers it on a tie.
	langs := []string{fallback}
	for lang := range dicts {
		if lang != fallback {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs[1:])

	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", l, err)
		}
		tags = append(tags, tag)
	}
	return &Translator{fallback: fallback, langs: langs, dicts: dicts, matcher: language.NewMatcher(tags)}, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flatten(key, v, out)
		default:
			out[key] = fmt.Sprint(v)
		}
	}
}

// Languages lists the supported languages, fallback first.
func (t *Translator) Languages() []string {
	return append([]string(nil), t.langs...)
}

// Match picks the best supported language for an Accept-Language header or a
// plain tag such as "ru".
func (t *Translator) Match(accept string) string {
	prefs, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(prefs) == 0 {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(prefs...)
	if conf == language.No {
		return t.fallback
	}
	return t.langs[idx]
}

// T renders key in lang, falling back to the fallback language and finally to
// the key itself.
func (t *Translator) T(lang, key string, args ...any) string {
	msg, ok := t.dicts[lang][key]
	if !ok {
		msg, ok = t.dicts[t.fallback][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

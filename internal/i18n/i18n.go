// Package i18n provides string resource lookup with interpolation.
package i18n

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tbielski/sessiondeck/internal/logger"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Bundle holds the string resources for a single locale.
type Bundle struct {
	mu      sync.RWMutex
	locale  string
	strings map[string]string
	lists   map[string][]string
}

// Load reads the embedded resource file for the given locale. Unknown locales
// fall back to "en".
func Load(locale string) (*Bundle, error) {
	if locale == "" {
		locale = "en"
	}

	data, err := localeFS.ReadFile("locales/" + locale + ".yaml")
	if err != nil {
		if locale == "en" {
			return nil, fmt.Errorf("failed to read locale %q: %w", locale, err)
		}
		logger.Warn("locale not found, falling back to en", "locale", locale)
		return Load("en")
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse locale %q: %w", locale, err)
	}

	b := &Bundle{
		locale:  locale,
		strings: make(map[string]string),
		lists:   make(map[string][]string),
	}
	b.flatten("", raw)
	return b, nil
}

// flatten walks the nested YAML document and indexes values by dotted key.
func (b *Bundle) flatten(prefix string, node map[string]any) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			b.strings[key] = val
		case map[string]any:
			b.flatten(key, val)
		case []any:
			items := make([]string, 0, len(val))
			for _, item := range val {
				items = append(items, fmt.Sprint(item))
			}
			b.lists[key] = items
		default:
			b.strings[key] = fmt.Sprint(val)
		}
	}
}

// Locale returns the locale this bundle was loaded for.
func (b *Bundle) Locale() string {
	return b.locale
}

// T returns the string for key, or fallback when the key is absent.
func (b *Bundle) T(key, fallback string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if s, ok := b.strings[key]; ok {
		return s
	}
	return fallback
}

// TF returns the string for key with {name} placeholders replaced from vars.
// Missing keys use fallback; missing vars leave the placeholder in place.
func (b *Bundle) TF(key, fallback string, vars map[string]string) string {
	s := b.T(key, fallback)
	for name, value := range vars {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}

// TList returns a list-valued resource (e.g. weekday names), or nil when the
// key is absent.
func (b *Bundle) TList(key string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if l, ok := b.lists[key]; ok {
		out := make([]string, len(l))
		copy(out, l)
		return out
	}
	return nil
}

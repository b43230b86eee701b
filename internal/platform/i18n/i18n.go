// Package i18n loads the embedded message catalogs and hands out printers
// for them.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every locale loaded from a catalog filesystem.
type Bundle struct {
	builder *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
	keys    map[string]map[string]string
}

//go:embed locales/*.yaml
var embeddedFS embed.FS

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the process-wide bundle built from the embedded catalogs.
func Default() *Bundle {
	defaultOnce.Do(func() {
		bundle, err := LoadFromFS(embeddedFS)
		if err != nil {
			panic(fmt.Sprintf("load embedded catalogs: %v", err))
		}
		defaultBundle = bundle
	})
	return defaultBundle
}

// LoadFromFS loads locales/*.yaml from catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	base, err := language.Parse(BaseLocale)
	if err != nil {
		return nil, fmt.Errorf("parse base locale: %w", err)
	}
	bundle := &Bundle{
		builder: catalog.NewBuilder(catalog.Fallback(base)),
		keys:    map[string]map[string]string{},
	}
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if err := bundle.add(path, file); err != nil {
			return nil, err
		}
	}
	if _, ok := bundle.keys[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// The base locale goes first so the matcher falls back to it.
	sort.SliceStable(bundle.tags, func(i, j int) bool {
		return bundle.tags[i].String() == BaseLocale && bundle.tags[j].String() != BaseLocale
	})
	bundle.matcher = language.NewMatcher(bundle.tags)
	return bundle, nil
}

func (b *Bundle) add(path string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", path)
	}
	if want := strings.TrimSuffix(path[strings.LastIndex(path, "/")+1:], ".yaml"); locale != want {
		return fmt.Errorf("catalog %s: locale %q must match file name %q", path, locale, want)
	}
	if _, exists := b.keys[locale]; exists {
		return fmt.Errorf("catalog %s: locale %q already defined", path, locale)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages are required", path)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: parse locale %q: %w", path, locale, err)
	}
	messages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", path)
		}
		if err := b.builder.SetString(tag, trimmed, value); err != nil {
			return fmt.Errorf("catalog %s: set %q: %w", path, trimmed, err)
		}
		messages[trimmed] = value
	}
	b.keys[locale] = messages
	b.tags = append(b.tags, tag)
	return nil
}

// Locales returns the loaded locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.keys))
	for locale := range b.keys {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// HasLocale reports whether locale was loaded.
func (b *Bundle) HasLocale(locale string) bool {
	_, ok := b.keys[strings.TrimSpace(locale)]
	return ok
}

// Keys returns the message keys defined for locale.
func (b *Bundle) Keys(locale string) []string {
	messages := b.keys[strings.TrimSpace(locale)]
	out := make([]string, 0, len(messages))
	for key := range messages {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Printer returns a printer for the closest loaded locale.
func (b *Bundle) Printer(locale string) *message.Printer {
	tag := b.resolve(locale)
	return message.NewPrinter(tag, message.Catalog(b.builder))
}

func (b *Bundle) resolve(locale string) language.Tag {
	requested, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return b.tags[0]
	}
	_, index, confidence := b.matcher.Match(requested)
	if confidence == language.No {
		return b.tags[0]
	}
	return b.tags[index]
}

// Printer returns a printer from the default bundle.
func Printer(locale string) *message.Printer {
	return Default().Printer(locale)
}

// ResolveLocale returns the loaded locale that best matches locale.
func (b *Bundle) ResolveLocale(locale string) string {
	return b.resolve(locale).String()
}

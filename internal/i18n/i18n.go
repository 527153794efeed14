// Package i18n resolves UI strings for the active locale.
//
// Locale files are embedded YAML documents of the form
//
//	locale: de
//	messages:
//	  Election: Wahl
//
// and are registered with an x/text message catalog. Keys missing from the
// active locale fall back to the base locale and finally to the key itself.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/plenum/internal/log"
)

// BaseLocale must be present in every locale set.
const BaseLocale = "en"

var ErrNoLocales = errors.New("no locale files found")

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Translator maps a message key to a display string.
type Translator interface {
	Translate(key string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(key string) string

func (f TranslatorFunc) Translate(key string) string { return f(key) }

// Identity returns every key unchanged.
var Identity Translator = TranslatorFunc(func(key string) string { return key })

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog is a Translator bound to one locale.
type Catalog struct {
	tag      language.Tag
	base     language.Tag
	known    map[language.Tag]map[string]struct{}
	printers map[language.Tag]*message.Printer
}

// Load returns a catalog for locale from the embedded locale files.
func Load(locale string) (*Catalog, error) {
	return LoadFromFS(embeddedLocales, locale)
}

// LoadFromFS reads every locales/*.yaml file in fsys and selects the best
// match for locale.
func LoadFromFS(fsys fs.FS, locale string) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, ErrNoLocales
	}
	sort.Strings(paths)

	base := language.Make(BaseLocale)
	builder := catalog.NewBuilder(catalog.Fallback(base))
	known := make(map[language.Tag]map[string]struct{})

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		tag, err := language.Parse(strings.TrimSpace(file.Locale))
		if err != nil {
			return nil, fmt.Errorf("%s: locale %q: %w", path, file.Locale, err)
		}
		if _, dup := known[tag]; dup {
			return nil, fmt.Errorf("%s: locale %s defined twice", path, tag)
		}
		keys := make(map[string]struct{}, len(file.Messages))
		for key, value := range file.Messages {
			if err := builder.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("%s: key %q: %w", path, key, err)
			}
			keys[key] = struct{}{}
		}
		known[tag] = keys
	}

	if _, ok := known[base]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}

	tags := builder.Languages()
	requested, err := language.Parse(locale)
	if err != nil {
		log.Warn(log.CatI18n, "unparsable locale, using base", "locale", locale)
		requested = base
	}
	_, index, confidence := language.NewMatcher(tags).Match(requested)
	selected := tags[index]
	if confidence == language.No {
		selected = base
	}

	printers := make(map[language.Tag]*message.Printer, 2)
	printers[selected] = message.NewPrinter(selected, message.Catalog(builder))
	printers[base] = message.NewPrinter(base, message.Catalog(builder))

	log.Info(log.CatI18n, "catalog loaded", "requested", locale, "selected", selected, "locales", len(tags))
	return &Catalog{tag: selected, base: base, known: known, printers: printers}, nil
}

// Locale returns the selected locale tag.
func (c *Catalog) Locale() string {
	return c.tag.String()
}

// Translate returns the message for key in the selected locale, falling back
// to the base locale and then to key.
func (c *Catalog) Translate(key string) string {
	for _, tag := range []language.Tag{c.tag, c.base} {
		if _, ok := c.known[tag][key]; ok {
			return c.printers[tag].Sprintf(key)
		}
	}
	log.Debug(log.CatI18n, "missing translation", "locale", c.tag, "key", key)
	return key
}

// Locales lists the locales available in the embedded catalog.
func Locales() ([]string, error) {
	paths, err := fs.Glob(embeddedLocales, "locales/*.yaml")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, strings.TrimSuffix(strings.TrimPrefix(p, "locales/"), ".yaml"))
	}
	return out, nil
}

// Plural returns a name function choosing between the translated singular
// and plural key.
func Plural(tr Translator, singular, plural string) func(bool) string {
	if tr == nil {
		tr = Identity
	}
	return func(many bool) string {
		if many {
			return tr.Translate(plural)
		}
		return tr.Translate(singular)
	}
}

var _ Translator = (*Catalog)(nil)

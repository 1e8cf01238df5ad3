package domain

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Language is a target language offered on the selection screen.
type Language struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
}

var catalog = []Language{
	{Name: "Spanish", Flag: "🇪🇸"},
	{Name: "French", Flag: "🇫🇷"},
	{Name: "German", Flag: "🇩🇪"},
	{Name: "Italian", Flag: "🇮🇹"},
	{Name: "Japanese", Flag: "🇯🇵"},
	{Name: "Korean", Flag: "🇰🇷"},
}

// Languages returns a copy of the language catalog in display order.
func Languages() []Language {
	out := make([]Language, len(catalog))
	copy(out, catalog)
	return out
}

// LookupLanguage finds a catalog language by name, ignoring case and
// surrounding whitespace.
func LookupLanguage(name string) (Language, error) {
	name = strings.TrimSpace(name)
	lang, ok := lo.Find(catalog, func(l Language) bool {
		return strings.EqualFold(l.Name, name)
	})
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	return lang, nil
}

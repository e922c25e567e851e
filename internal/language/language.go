package language

import (
	"errors"
	"fmt"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrUnknownLanguage is returned by Resolve for values it cannot map.
var ErrUnknownLanguage = errors.New("unknown language")

// Language pairs a canonical code with its English display name.
type Language struct {
	Code string
	Name string
}

// common lists the languages accepted by 3-letter code and English name.
var common = []string{
	"ar", "cs", "da", "de", "el", "en", "es", "fi", "fr", "he", "hi", "hu",
	"id", "it", "ja", "ko", "nl", "no", "pl", "pt", "ro", "ru", "sv", "th",
	"tr", "uk", "vi", "zh",
}

// bibliographic maps ISO 639-2/B codes onto their 639-1 equivalents.
var bibliographic = map[string]string{
	"chi": "zh",
	"cze": "cs",
	"dut": "nl",
	"fre": "fr",
	"ger": "de",
	"gre": "el",
	"rum": "ro",
}

var known = buildIndex()

func buildIndex() map[string]Language {
	names := display.English.Languages()
	index := make(map[string]Language, len(common)*3+len(bibliographic))
	for _, code := range common {
		base := xlanguage.MustParseBase(code)
		lang := Language{Code: base.String(), Name: names.Name(base)}
		index[lang.Code] = lang
		index[strings.ToLower(lang.Name)] = lang
		if iso3 := base.ISO3(); iso3 != "" {
			index[iso3] = lang
		}
	}
	for alias, code := range bibliographic {
		index[alias] = index[code]
	}
	return index
}

func lookup(value string) (Language, bool) {
	lang, ok := known[strings.ToLower(strings.TrimSpace(value))]
	return lang, ok
}

// parseTag resolves values outside the common set as BCP 47 tags.
func parseTag(value string) (Language, bool) {
	tag, err := xlanguage.Parse(strings.TrimSpace(value))
	if err != nil {
		return Language{}, false
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return Language{}, false
	}
	return Language{Code: tag.String(), Name: name}, true
}

// ToISO2 converts a recognized code or English name to ISO 639-1. Unknown
// 2-letter input passes through; anything else yields "".
func ToISO2(code string) string {
	if lang, ok := lookup(code); ok {
		return lang.Code
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns the English name for code, "Unknown" for empty input
// and the uppercased input when nothing matches.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if lang, ok := lookup(code); ok {
		return lang.Name
	}
	if lang, ok := parseTag(code); ok {
		return lang.Name
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Resolve maps a user-supplied language value (ISO 639-1/639-2 code, English
// name, or BCP 47 tag) to a canonical code and display name.
func Resolve(value string) (Language, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Language{}, fmt.Errorf("%w: empty value", ErrUnknownLanguage)
	}
	if lang, ok := lookup(trimmed); ok {
		return lang, nil
	}
	if lang, ok := parseTag(trimmed); ok {
		return lang, nil
	}
	return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, trimmed)
}

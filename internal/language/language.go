// Package language normalizes provider language codes and names them for reports.
package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// English is the base code every transcript is translated into.
const English = "en"

// Normalize reduces tags such as "en-US", "hi_IN" or "HI" to their base code.
// Unparseable input is returned lower-cased.
func Normalize(code string) string {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		if base, ok := byName[strings.ToLower(code)]; ok {
			return base
		}
		return strings.ToLower(code)
	}
	base, _ := tag.Base()
	return base.String()
}

// Some STT vendors report the language by its English name ("hindi").
var byName = func() map[string]string {
	codes := []string{
		"en", "hi", "bn", "ta", "te", "mr", "gu", "kn", "ml", "pa", "ur",
		"es", "fr", "de", "it", "pt", "nl", "ru", "tr", "ar", "zh", "ja",
		"ko", "id", "ms", "vi", "th", "pl", "uk", "sv",
	}
	names := display.English.Languages()
	m := make(map[string]string, len(codes))
	for _, c := range codes {
		m[strings.ToLower(names.Name(language.MustParse(c)))] = c
	}
	return m
}()

// IsEnglish reports whether code normalizes to English.
func IsEnglish(code string) bool {
	return Normalize(code) == English
}

// DisplayName returns the English name of a language, e.g. "hi" -> "Hindi".
func DisplayName(code string) string {
	base := Normalize(code)
	if base == "" {
		return ""
	}
	tag, err := language.Parse(base)
	if err != nil {
		return strings.ToUpper(base)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(base)
}

// Package normalize cleans up metadata values declared by content files.
package normalize

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// bibliographic maps ISO 639-2/B codes that BCP 47 parsing does not accept to ISO 639-1.
var bibliographic = map[string]string{
	"ger": "de", "fre": "fr", "dut": "nl", "chi": "zh", "cze": "cs",
	"gre": "el", "per": "fa", "rum": "ro", "slo": "sk", "alb": "sq",
	"arm": "hy", "baq": "eu", "bur": "my", "geo": "ka", "ice": "is",
	"mac": "mk", "may": "ms", "tib": "bo", "wel": "cy",
}

// named lists the languages whose English names are recognized ("English", "german").
var named = []string{
	"en", "es", "fr", "de", "it", "pt", "nl", "ru", "ja", "zh", "ko", "ar",
	"hi", "pl", "sv", "no", "da", "fi", "tr", "el", "he", "cs", "hu", "ro",
	"th", "vi", "id", "ms", "uk", "ca", "hr", "sk", "bg", "lt", "lv", "et",
	"sl", "sr", "fa", "bn", "ta", "ga", "cy", "eu", "gl", "is", "la",
}

var nameToCode = buildNameIndex()

func buildNameIndex() map[string]string {
	namer := display.English.Languages()
	index := make(map[string]string, len(named)+2)
	for _, code := range named {
		if name := namer.Name(language.MustParseBase(code)); name != "" {
			index[strings.ToLower(name)] = code
		}
	}
	index["farsi"] = "fa"
	index["filipino"] = "tl"
	return index
}

// LanguageCode converts various language representations to ISO 639-1 codes.
// It handles:
//   - ISO 639-1 codes: "en" -> "en"
//   - ISO 639-2 codes: "eng" -> "en", "ger" -> "de"
//   - Locale codes: "en-US", "en_GB" -> "en"
//   - Language names: "English", "ENGLISH" -> "en"
//
// Returns empty string for unrecognized values.
func LanguageCode(raw string) string {
	s := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, "\x00", "")))
	if s == "" {
		return ""
	}

	if code, ok := nameToCode[s]; ok {
		return code
	}

	// Only the primary subtag matters.
	if idx := strings.IndexAny(s, "-_"); idx > 0 {
		s = s[:idx]
	}
	if code, ok := bibliographic[s]; ok {
		return code
	}

	base, err := language.ParseBase(s)
	if err != nil {
		return ""
	}
	// Languages without a two-letter code are too obscure to be worth keeping.
	if code := base.String(); len(code) == 2 {
		return code
	}
	return ""
}

// Language converts various language representations to English display names.
// "en" -> "English", "german" -> "German", "deu" -> "German".
// Returns empty string for unrecognized values.
func Language(raw string) string {
	code := LanguageCode(raw)
	if code == "" {
		return ""
	}
	return display.English.Languages().Name(language.MustParseBase(code))
}

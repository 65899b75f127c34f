package config

import "sort"

// Locale is one selectable display locale.
type Locale struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// displayLocaleMap lists the locales the formatter is exercised against.
// Names are in the language itself for the settings page.
var displayLocaleMap = map[string]string{
	"ar":    "العربية",
	"de":    "Deutsch",
	"en":    "English",
	"en-GB": "English (UK)",
	"es":    "Español",
	"fr":    "Français",
	"hi":    "हिन्दी",
	"id":    "Bahasa Indonesia",
	"it":    "Italiano",
	"ja":    "日本語",
	"ko":    "한국어",
	"nl":    "Nederlands",
	"pl":    "Polski",
	"pt":    "Português",
	"pt-BR": "Português (Brasil)",
	"ru":    "Русский",
	"tr":    "Türkçe",
	"uk":    "Українська",
	"vi":    "Tiếng Việt",
	"zh":    "中文",
}

// Supported reports whether the locale code is selectable.
func Supported(code string) bool {
	_, ok := displayLocaleMap[code]
	return ok
}

// Locales returns the selectable locales sorted by code, for rendering a
// settings page picker.
func Locales() []Locale {
	out := make([]Locale, 0, len(displayLocaleMap))
	for code, name := range displayLocaleMap {
		out = append(out, Locale{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

package format

import (
	"time"

	"golang.org/x/text/language"
)

// Locale is the locale every rendered date and the RSS channel follow.
var Locale = language.AmericanEnglish

type Style string

const (
	StyleShort Style = "short"
	StyleLong  Style = "long"
)

type layouts struct {
	short string
	long  string
}

// supported lists the locales with known layouts; the first is the fallback.
var (
	supported = []language.Tag{language.AmericanEnglish, language.BritishEnglish}

	localeLayouts = []layouts{
		{short: "Jan 2, 2006", long: "January 2, 2006"},
		{short: "2 Jan 2006", long: "2 January 2006"},
	}

	matcher = language.NewMatcher(supported)
)

// FormatDate renders t in Locale: "Jan 15, 2024" for StyleShort and
// "January 15, 2024" for anything else.
func FormatDate(t time.Time, style Style) string {
	return FormatDateIn(t, style, Locale)
}

// FormatDateIn is FormatDate for an explicit locale. Locales without known
// layouts fall back to en-US.
func FormatDateIn(t time.Time, style Style, locale language.Tag) string {
	_, index, _ := matcher.Match(locale)
	l := localeLayouts[index]

	if style == StyleShort {
		return t.Format(l.short)
	}
	return t.Format(l.long)
}

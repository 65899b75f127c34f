// Package format rewrites class-marked elements of a rendered page with
// locale-aware display text: view counts and follower totals as compact or
// grouped numbers, upload timestamps as relative or absolute dates. The
// templating layer emits elements carrying a kind class plus raw/prefix/suffix
// attributes; a formatting pass replaces their text content in place.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Kind identifies how an element's raw value is displayed. The constants
// double as the class names the templating layer puts on elements.
type Kind string

const (
	// KindCompactNumber renders abbreviated totals such as "1.2K".
	KindCompactNumber Kind = "compact-number"
	// KindNumber renders full digits with locale grouping.
	KindNumber Kind = "number"
	// KindDate renders a Unix timestamp relative to now, falling back to
	// absolute forms as the value ages.
	KindDate Kind = "youtube-date"
	// KindDayDate always renders an absolute day+month+year.
	KindDayDate Kind = "youtube-day-date"
)

// kinds in the order Apply checks them on each element.
var kinds = [...]Kind{KindCompactNumber, KindNumber, KindDate, KindDayDate}

// Config controls a Formatter. The zero value is usable: English locale,
// "?" placeholder, local time zone, conventional layouts.
type Config struct {
	// Locale is a BCP 47 tag such as "en" or "pt-BR".
	Locale string

	// Placeholder is rendered when a raw attribute is missing or does not
	// parse as a base-10 integer.
	Placeholder string

	// Location resolves timestamps for absolute layouts. Defaults to the
	// process-local zone, matching what a viewer expects.
	Location *time.Location

	// Absolute date layouts, selected by the age of the timestamp.
	YearLayout      string // a year or more old
	MonthYearLayout string // a month or more old
	DayLayout       string // three days or more old, and all day-dates
	TimeLayout      string // later today
	FutureLayout    string // beyond today

	// Now supplies the current instant. Overridden in tests.
	Now func() time.Time
}

// Formatter applies locale-bound formatting to element trees. Immutable
// after construction; the locale machinery is built once.
type Formatter struct {
	cfg     Config
	tag     language.Tag
	printer *message.Printer
}

// New builds a Formatter for the configured locale. An unparseable locale
// tag is an error; empty fields take defaults.
func New(cfg Config) (*Formatter, error) {
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", cfg.Locale, err)
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = "?"
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.YearLayout == "" {
		cfg.YearLayout = "2006"
	}
	if cfg.MonthYearLayout == "" {
		cfg.MonthYearLayout = "Jan 2006"
	}
	if cfg.DayLayout == "" {
		cfg.DayLayout = "2 Jan 2006"
	}
	if cfg.TimeLayout == "" {
		cfg.TimeLayout = "15:04"
	}
	if cfg.FutureLayout == "" {
		cfg.FutureLayout = "2 Jan 15:04"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Formatter{cfg: cfg, tag: tag, printer: message.NewPrinter(tag)}, nil
}

// Number renders full digits with locale-aware grouping, e.g. "1,234,567".
func (f *Formatter) Number(n int64) string {
	return f.printer.Sprint(number.Decimal(n))
}

// CompactNumber renders abbreviated notation, e.g. "1.2K". Values under a
// thousand fall back to Number. The mantissa keeps one fractional digit
// below ten and none above, truncating rather than rounding so a count
// never displays higher than it is.
func (f *Formatter) CompactNumber(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	var div int64
	var suffix string
	switch {
	case abs >= 1_000_000_000_000:
		div, suffix = 1_000_000_000_000, "T"
	case abs >= 1_000_000_000:
		div, suffix = 1_000_000_000, "B"
	case abs >= 1_000_000:
		div, suffix = 1_000_000, "M"
	case abs >= 1_000:
		div, suffix = 1_000, "K"
	default:
		return f.Number(n)
	}

	// Integer tenths sidestep float64 truncation artifacts (1200/1000
	// floors to 1.1 in float math).
	tenths := abs / (div / 10)
	var s string
	switch {
	case tenths < 100 && tenths%10 != 0:
		s = f.printer.Sprint(number.Decimal(float64(tenths)/10, number.MaxFractionDigits(1)))
	default:
		s = f.printer.Sprint(number.Decimal(tenths / 10))
	}
	if n < 0 {
		return "-" + s + suffix
	}
	return s + suffix
}

// Date renders a Unix timestamp (seconds) against now. Recent values are
// relative ("3 hours ago"); older values switch to absolute forms, oldest
// first so ties resolve to the coarser tier. Future values render as a
// time of day while still inside the current day, then as day+time.
func (f *Formatter) Date(now time.Time, ts int64) string {
	t := time.Unix(ts, 0).In(f.cfg.Location)

	secondsAgo := floorDiv(now.UnixMilli()-t.UnixMilli(), 1000)
	minutesAgo := floorDiv(secondsAgo, 60)
	hoursAgo := floorDiv(minutesAgo, 60)
	daysAgo := floorDiv(hoursAgo, 24)

	switch {
	case daysAgo >= 365:
		return t.Format(f.cfg.YearLayout)
	case daysAgo >= 31:
		return t.Format(f.cfg.MonthYearLayout)
	case daysAgo >= 3:
		return t.Format(f.cfg.DayLayout)
	case daysAgo >= 1:
		return f.relative(daysAgo, "day")
	case hoursAgo >= 1:
		return f.relative(hoursAgo, "hour")
	case minutesAgo >= 1:
		return f.relative(minutesAgo, "minute")
	case secondsAgo >= 0:
		return f.relative(secondsAgo, "second")
	case daysAgo >= -1:
		// Future, but the floored day count still rounds to today.
		return t.Format(f.cfg.TimeLayout)
	default:
		return t.Format(f.cfg.FutureLayout)
	}
}

// DayDate renders an absolute day+month+year regardless of age.
func (f *Formatter) DayDate(ts int64) string {
	return time.Unix(ts, 0).In(f.cfg.Location).Format(f.cfg.DayLayout)
}

func (f *Formatter) relative(n int64, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return f.printer.Sprintf("%v %s ago", number.Decimal(n), unit)
}

// floorDiv divides rounding toward negative infinity, so future
// timestamps land in the right cascade tier.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

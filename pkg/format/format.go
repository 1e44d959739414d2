// Package format renders amounts and dates for printed receipts and reports.
package format

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	"github.com/shopspring/decimal"
)

const (
	// Placeholder is returned for amounts that are absent.
	Placeholder = "N/A"
	// InvalidDate is returned for dates that could not be parsed.
	InvalidDate = "Invalid Date"

	DefaultLocale   = "id"
	DefaultTimezone = "Asia/Jakarta"
	DefaultSymbol   = "Rp"
)

// FractionPolicy decides how many fraction digits an amount carries.
type FractionPolicy int

const (
	// FractionLocale uses the currency's customary two fraction digits.
	FractionLocale FractionPolicy = iota
	// FractionNone rounds amounts to whole units.
	FractionNone
)

// ParseFractionPolicy maps a configuration value ("none", "locale") to a policy.
// Unknown values fall back to FractionLocale.
func ParseFractionPolicy(s string) FractionPolicy {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "0", "zero":
		return FractionNone
	default:
		return FractionLocale
	}
}

func (p FractionPolicy) digits() uint64 {
	if p == FractionNone {
		return 0
	}
	return 2
}

// Options configures a Formatter.
type Options struct {
	Locale         string
	Timezone       string
	CurrencySymbol string
	Fraction       FractionPolicy
}

// Formatter is immutable after construction and safe for concurrent use.
type Formatter struct {
	trans  locales.Translator
	loc    *time.Location
	symbol string
	digits uint64
}

// New builds a Formatter. An unknown locale falls back to Indonesian and an
// unknown zone to a fixed UTC+7 offset.
func New(opts Options) *Formatter {
	fallback := id.New()
	uni := ut.New(fallback, fallback, en.New())

	var trans locales.Translator = fallback
	if opts.Locale != "" {
		if t, found := uni.GetTranslator(opts.Locale); found {
			trans = t
		}
	}

	symbol := opts.CurrencySymbol
	if symbol == "" {
		symbol = DefaultSymbol
	}

	return &Formatter{
		trans:  trans,
		loc:    loadLocation(opts.Timezone),
		symbol: symbol,
		digits: opts.Fraction.digits(),
	}
}

func loadLocation(name string) *time.Location {
	if name == "" {
		name = DefaultTimezone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.FixedZone("WIB", 7*60*60)
}

// Location returns the zone dates are rendered in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Currency formats v with the currency symbol, or Placeholder when v is nil.
func (f *Formatter) Currency(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return f.Amount(*v)
}

// Amount formats v with the currency symbol, e.g. "Rp65.000" or "-Rp5.000".
func (f *Formatter) Amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	sign := ""
	if v < 0 && f.trans.FmtNumber(math.Abs(v), f.digits) != f.trans.FmtNumber(0, f.digits) {
		sign = "-"
	}
	return sign + f.symbol + f.trans.FmtNumber(math.Abs(v), f.digits)
}

// Money formats a decimal amount with the currency symbol.
func (f *Formatter) Money(d decimal.Decimal) string {
	return f.Amount(d.InexactFloat64())
}

// PlainMoney formats a decimal amount without the symbol.
func (f *Formatter) PlainMoney(d decimal.Decimal) string {
	return f.Plain(d.InexactFloat64())
}

// Plain formats v with locale grouping and no symbol, for table cells.
func (f *Formatter) Plain(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return f.trans.FmtNumber(v, f.digits)
}

// Date renders a long date with time of day, or InvalidDate for the zero time.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	t = t.In(f.loc)
	return f.trans.FmtDateLong(t) + timeSeparator(f.trans.Locale()) + f.trans.FmtTimeMedium(t)
}

// timeSeparator joins the date and time parts the way the locale's long
// date-time pattern does, e.g. "15 Oktober 2026 pukul 14.30.05".
func timeSeparator(locale string) string {
	switch locale {
	case "id":
		return " pukul "
	case "en":
		return " at "
	default:
		return " "
	}
}

// Day renders a long date without the time of day.
func (f *Formatter) Day(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return f.trans.FmtDateLong(t.In(f.loc))
}

// DateRange renders the span covered by times: a single day when the
// earliest and latest fall on the same day, "<earliest> - <latest>"
// otherwise, and "" when there is no valid time. The argument is not
// reordered.
func (f *Formatter) DateRange(times ...time.Time) string {
	valid := make([]time.Time, 0, len(times))
	for _, t := range times {
		if !t.IsZero() {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		return ""
	}

	slices.SortFunc(valid, func(a, b time.Time) int { return a.Compare(b) })

	first := f.Day(valid[0])
	last := f.Day(valid[len(valid)-1])
	if first == last {
		return first
	}
	return first + " - " + last
}

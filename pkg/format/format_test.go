package format

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func receiptFormatter() *Formatter {
	return New(Options{Locale: "id", Timezone: "Asia/Jakarta", CurrencySymbol: "Rp", Fraction: FractionNone})
}

func TestCurrencyPlaceholderForNil(t *testing.T) {
	if got := receiptFormatter().Currency(nil); got != Placeholder {
		t.Fatalf("expected %q, got %q", Placeholder, got)
	}
}

func TestAmountWholeRupiah(t *testing.T) {
	f := receiptFormatter()

	tests := []struct {
		in   float64
		want string
	}{
		{65000, "Rp65.000"},
		{5000, "Rp5.000"},
		{0, "Rp0"},
		{1250000, "Rp1.250.000"},
		{-5000, "-Rp5.000"},
		{-0.2, "Rp0"},
	}
	for _, tt := range tests {
		if got := f.Amount(tt.in); got != tt.want {
			t.Errorf("Amount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	v := 70000.0
	if got := f.Currency(&v); got != "Rp70.000" {
		t.Errorf("Currency(&70000) = %q", got)
	}
}

func TestAmountLocaleFractionDigits(t *testing.T) {
	f := New(Options{Locale: "id", Fraction: FractionLocale})
	if got := f.Amount(65000); got != "Rp65.000,00" {
		t.Fatalf("expected two fraction digits, got %q", got)
	}
	if got := f.Plain(65000); got != "65.000,00" {
		t.Fatalf("expected plain amount without symbol, got %q", got)
	}
}

func TestMoneyFormatsDecimals(t *testing.T) {
	f := New(Options{Locale: "id", Fraction: FractionLocale})
	sum := decimal.RequireFromString("0.1").Add(decimal.RequireFromString("0.2"))

	if got := f.Money(sum); got != "Rp0,30" {
		t.Fatalf("unexpected money %q", got)
	}
	if got := f.PlainMoney(decimal.NewFromInt(-5000)); got != "-5.000,00" {
		t.Fatalf("unexpected plain money %q", got)
	}
}

func TestAmountEnglishGrouping(t *testing.T) {
	f := New(Options{Locale: "en", CurrencySymbol: "IDR ", Fraction: FractionLocale})
	if got := f.Amount(65000); got != "IDR 65,000.00" {
		t.Fatalf("unexpected english amount %q", got)
	}
}

func TestParseFractionPolicy(t *testing.T) {
	if ParseFractionPolicy("none") != FractionNone {
		t.Fatalf("expected none policy")
	}
	if ParseFractionPolicy(" NONE ") != FractionNone {
		t.Fatalf("expected policy parsing to ignore case and spaces")
	}
	if ParseFractionPolicy("locale") != FractionLocale {
		t.Fatalf("expected locale policy")
	}
	if ParseFractionPolicy("whatever") != FractionLocale {
		t.Fatalf("expected unknown values to fall back to locale policy")
	}
}

func TestDateInvalidMarker(t *testing.T) {
	if got := receiptFormatter().Date(time.Time{}); got != InvalidDate {
		t.Fatalf("expected %q, got %q", InvalidDate, got)
	}
}

func TestDateUsesConfiguredZone(t *testing.T) {
	f := receiptFormatter()
	// 20:00 UTC on the 14th is already the 15th in Jakarta.
	ts := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)

	if got := f.Day(ts); got != "15 Oktober 2026" {
		t.Fatalf("unexpected day %q", got)
	}
	if got := f.Date(ts); !strings.HasPrefix(got, "15 Oktober 2026 pukul ") {
		t.Fatalf("expected date with time of day, got %q", got)
	}
}

func TestDateRange(t *testing.T) {
	f := receiptFormatter()
	morning := time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC)

	if got := f.DateRange(); got != "" {
		t.Fatalf("expected empty range for no input, got %q", got)
	}
	if got := f.DateRange(time.Time{}); got != "" {
		t.Fatalf("expected empty range for invalid input, got %q", got)
	}
	if got := f.DateRange(morning); got != f.Day(morning) || strings.Contains(got, " - ") {
		t.Fatalf("expected single day, got %q", got)
	}
	if got := f.DateRange(evening, morning); got != f.Day(morning) {
		t.Fatalf("expected same-day range to collapse, got %q", got)
	}

	want := f.Day(morning) + " - " + f.Day(later)
	if got := f.DateRange(later, morning); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDateRangeDoesNotReorderInput(t *testing.T) {
	f := receiptFormatter()
	times := []time.Time{
		time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	}
	first := times[0]

	f.DateRange(times...)

	if !times[0].Equal(first) {
		t.Fatalf("caller slice was reordered")
	}
}

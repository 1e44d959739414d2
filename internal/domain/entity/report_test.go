package entity

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTallyKeepsFirstSeenOrder(t *testing.T) {
	tally := NewTally()
	tally.Add("Kopi", decimal.NewFromInt(2))
	tally.Add("Teh", decimal.NewFromInt(1))
	tally.Add("Kopi", decimal.NewFromInt(3))
	tally.Add("Air", decimal.NewFromInt(1))

	if got, want := tally.Keys(), []string{"Kopi", "Teh", "Air"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	if !tally.Get("Kopi").Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected Kopi = 5, got %v", tally.Get("Kopi"))
	}
	if tally.Len() != 3 {
		t.Fatalf("expected 3 keys, got %d", tally.Len())
	}

	b, err := json.Marshal(tally)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `{"Kopi":"5","Teh":"1","Air":"1"}` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestTallySumsAmountsExactly(t *testing.T) {
	tally := NewTally()
	tally.Add("QRIS", Number(0.1).Decimal())
	tally.Add("QRIS", Number(0.2).Decimal())

	if got := tally.Get("QRIS").String(); got != "0.3" {
		t.Fatalf("expected 0.3, got %s", got)
	}
}

func TestTallyKeysReturnsCopy(t *testing.T) {
	tally := NewTally()
	tally.Add("a", decimal.NewFromInt(1))
	keys := tally.Keys()
	keys[0] = "mutated"

	if tally.Keys()[0] != "a" {
		t.Fatalf("Keys exposed internal slice")
	}
}

func TestSubtotalFor(t *testing.T) {
	agg := &Aggregation{OrderSubtotals: []OrderSubtotal{
		{OrderID: "A", Subtotal: decimal.NewFromInt(10)},
		{OrderID: "B", Subtotal: decimal.NewFromInt(20)},
	}}
	if v, ok := agg.SubtotalFor("B"); !ok || !v.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected B = 20, got %v %v", v, ok)
	}
	if _, ok := agg.SubtotalFor("C"); ok {
		t.Fatalf("expected missing id to report false")
	}
}

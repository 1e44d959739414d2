package entity

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Tally is a string-keyed running sum that remembers the order in which keys
// were first seen. The zero value is not usable; call NewTally.
type Tally struct {
	keys   []string
	values map[string]decimal.Decimal
}

// NewTally creates an empty Tally.
func NewTally() *Tally {
	return &Tally{values: make(map[string]decimal.Decimal)}
}

// Add adds delta to key, registering key on first use.
func (t *Tally) Add(key string, delta decimal.Decimal) {
	v, ok := t.values[key]
	if !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v.Add(delta)
}

// Get returns the sum for key.
func (t *Tally) Get(key string) decimal.Decimal {
	return t.values[key]
}

// Keys returns the keys in first-seen order.
func (t *Tally) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of keys.
func (t *Tally) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// MarshalJSON writes an object whose keys keep their first-seen order.
func (t *Tally) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnpaidDetail is one line of a customer's unpaid group.
type UnpaidDetail struct {
	MenuName   string          `json:"menu_name"`
	Quantity   float64         `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Note       string          `json:"note,omitempty"`
}

// CustomerGroup collects the unpaid cart lines of one customer.
type CustomerGroup struct {
	CustomerName string          `json:"customer_name"`
	Timestamp    Timestamp       `json:"timestamp"`
	Details      []UnpaidDetail  `json:"details"`
	TotalUnpaid  decimal.Decimal `json:"total_unpaid_for_customer"`
}

// GrandTotals are the cross-order totals of one report.
type GrandTotals struct {
	Sales          decimal.Decimal `json:"sales"`
	SoldByCategory *Tally          `json:"sold_by_category"`
	SoldByMenu     *Tally          `json:"sold_by_menu"`
	PaidByMethod   *Tally          `json:"paid_by_payment_method"`
	CountByMethod  *Tally          `json:"count_by_payment_method"`
}

// NewGrandTotals returns empty grand totals.
func NewGrandTotals() GrandTotals {
	return GrandTotals{
		SoldByCategory: NewTally(),
		SoldByMenu:     NewTally(),
		PaidByMethod:   NewTally(),
		CountByMethod:  NewTally(),
	}
}

// OrderSubtotal is the subtotal recomputed from an order's detail lines.
type OrderSubtotal struct {
	OrderID  ID              `json:"order_id"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Aggregation is the result of reducing paid orders and unpaid cart lines.
// OrderSubtotals is index-aligned with the orders it was built from.
type Aggregation struct {
	UnpaidGroups     []CustomerGroup `json:"unpaid_groups"`
	UnpaidGrandTotal decimal.Decimal `json:"unpaid_grand_total"`
	OrderSubtotals   []OrderSubtotal `json:"order_subtotals"`
	Grand            GrandTotals     `json:"grand_totals"`
}

// SubtotalFor returns the subtotal of the first order with the given id.
func (a *Aggregation) SubtotalFor(id ID) (decimal.Decimal, bool) {
	for _, s := range a.OrderSubtotals {
		if s.OrderID == id {
			return s.Subtotal, true
		}
	}
	return decimal.Zero, false
}

package repository

import (
	"testing"
	"time"
)

func TestToOrder(t *testing.T) {
	created := time.Date(2026, 10, 15, 2, 30, 0, 0, time.UTC)
	rec := &OrderRecord{
		ID:            "TRX-001",
		CreatedAt:     created,
		CustomerName:  "Ayu",
		PaymentMethod: "QRIS",
		Paid:          70000,
		Total:         65000,
		Details: []OrderDetailRecord{
			{MenuName: "Latte", Category: "Kopi", Quantity: 2, UnitPrice: 25000, TotalPrice: 50000},
			{MenuName: "Croissant", Quantity: 1, UnitPrice: 15000, TotalPrice: 15000, Note: "hangat"},
		},
	}

	order := toOrder(rec)

	if order.ID != "TRX-001" {
		t.Errorf("ID = %q, want TRX-001", order.ID)
	}
	if !order.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", order.CreatedAt.Time, created)
	}
	if order.Paid.Float() != 70000 {
		t.Errorf("Paid = %v, want 70000", order.Paid)
	}
	if len(order.Details) != 2 {
		t.Fatalf("len(Details) = %d, want 2", len(order.Details))
	}
	if order.Details[1].Category != "" || order.Details[1].Note != "hangat" {
		t.Errorf("second line = %+v", order.Details[1])
	}
	if order.Details[0].TotalPrice.Float() != 50000 {
		t.Errorf("first line total = %v, want 50000", order.Details[0].TotalPrice)
	}
}

func TestToCartLine(t *testing.T) {
	tests := []struct {
		name         string
		rec          CartLineRecord
		wantCustomer string
		wantMenu     string
	}{
		{
			name:         "named customer and menu",
			rec:          CartLineRecord{CustomerName: "Budi", MenuName: "Teh", Price: 10000, Quantity: 3},
			wantCustomer: "Budi",
			wantMenu:     "Teh",
		},
		{
			name: "walk-in without menu reference",
			rec:  CartLineRecord{Price: 5000, Quantity: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := toCartLine(&tt.rec)
			if got := line.CustomerName(); got != tt.wantCustomer {
				t.Errorf("CustomerName() = %q, want %q", got, tt.wantCustomer)
			}
			if got := line.MenuName(); got != tt.wantMenu {
				t.Errorf("MenuName() = %q, want %q", got, tt.wantMenu)
			}
			if line.MenuDetail.Price.Float() != tt.rec.Price {
				t.Errorf("Price = %v, want %v", line.MenuDetail.Price, tt.rec.Price)
			}
		})
	}
}

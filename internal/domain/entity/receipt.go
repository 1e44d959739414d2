package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName    string   `json:"store_name"`
	AddressLines []string `json:"address_lines,omitempty"`
	LogoURL      string   `json:"logo_url,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name  string `json:"name"`
	Qty   Number `json:"qty"`
	Price Number `json:"price"`
	Note  string `json:"note,omitempty"`
}

// LineTotal is price times quantity.
func (i ReceiptItem) LineTotal() decimal.Decimal {
	return i.Price.Decimal().Mul(i.Qty.Decimal())
}

// ReceiptInfo is a value object for a single-transaction receipt.
// It is composed by the till at checkout time and is never stored.
type ReceiptInfo struct {
	Customer           string        `json:"customer"`
	Cashier            string        `json:"cashier"`
	Items              []ReceiptItem `json:"items"`
	Total              Number        `json:"total"`
	Paid               Number        `json:"paid"`
	Change             Number        `json:"change"`
	PaymentMethodLabel string        `json:"payment_method_label"`
}

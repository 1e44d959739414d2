package entity

import "encoding/json"

// Order is a paid transaction, read-only to the receipt engine.
type Order struct {
	ID            ID                `json:"id"`
	CreatedAt     Timestamp         `json:"created_at"`
	CustomerName  string            `json:"customer_name,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Paid          Number            `json:"paid"`
	Total         Number            `json:"total,omitempty"` // stored aggregate, never used for totals
	Details       []OrderDetailLine `json:"details"`
}

// OrderDetailLine is a single menu line of a paid order.
type OrderDetailLine struct {
	MenuName   string `json:"menu_name"`
	Category   string `json:"category,omitempty"`
	Quantity   Number `json:"quantity"`
	UnitPrice  Number `json:"unit_price"`
	TotalPrice Number `json:"total_price"`
	Note       string `json:"note,omitempty"`
}

// UnmarshalJSON accepts the older "menu_price" key for the unit price.
func (l *OrderDetailLine) UnmarshalJSON(b []byte) error {
	type alias OrderDetailLine
	aux := struct {
		*alias
		MenuPrice Number `json:"menu_price"`
	}{alias: (*alias)(l)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if l.UnitPrice == 0 {
		l.UnitPrice = aux.MenuPrice
	}
	return nil
}

// UnpaidCartLine is a pending cart line that has not been paid yet.
type UnpaidCartLine struct {
	Customer   *CartCustomer  `json:"customer"`
	Timestamp  Timestamp      `json:"timestamp"`
	MenuDetail CartMenuDetail `json:"menu_detail"`
	Quantity   Number         `json:"quantity"`
	Note       string         `json:"note,omitempty"`
}

// CartCustomer references the customer a cart line was opened for.
type CartCustomer struct {
	Customer string `json:"customer"`
}

// CartMenuDetail is the priced menu entry of a cart line.
type CartMenuDetail struct {
	Menu  *CartMenu `json:"menu_id"`
	Price Number    `json:"price"`
}

// CartMenu is the menu item behind a cart line.
type CartMenu struct {
	Name string `json:"name"`
}

// CustomerName returns the customer label, or "" when there is none.
func (c UnpaidCartLine) CustomerName() string {
	if c.Customer == nil {
		return ""
	}
	return c.Customer.Customer
}

// MenuName returns the menu item name, or "" when there is none.
func (c UnpaidCartLine) MenuName() string {
	if c.MenuDetail.Menu == nil {
		return ""
	}
	return c.MenuDetail.Menu.Name
}

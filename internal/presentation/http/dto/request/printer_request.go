package request

import "github.com/sangkips/kasir-receipt/internal/domain/entity"

// PrintReceiptRequest is the request body for printing a receipt. Cashier
// is taken from the session token when the body leaves it empty.
type PrintReceiptRequest struct {
	entity.ReceiptInfo
}

// ReportRequest carries the records of one report. Both lists may be empty.
type ReportRequest struct {
	Orders       []entity.Order          `json:"orders"`
	UnpaidOrders []entity.UnpaidCartLine `json:"unpaid_orders"`
}

// HistoryQuery selects stored orders by creation date, inclusive. Dates are
// YYYY-MM-DD or RFC 3339.
type HistoryQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

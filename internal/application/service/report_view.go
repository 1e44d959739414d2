package service

import (
	"strconv"
	"time"

	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ReportView is a fully formatted report, ready for an encoder. Every
// amount and date in it is already a display string.
type ReportView struct {
	Title      string
	Header     entity.ReceiptHeader
	Period     string
	Unpaid     *UnpaidSectionView
	Orders     []OrderSectionView
	GrandTotal string
	Summaries  []SummaryBlockView
	PrintedAt  string
	Footer     string
}

// UnpaidSectionView lists the unpaid cart lines grouped per customer.
type UnpaidSectionView struct {
	Groups []UnpaidGroupView
	Total  string
}

type UnpaidGroupView struct {
	Date     string
	Customer string
	Lines    []LineView
	Subtotal string
}

// OrderSectionView is one paid order. Orders without lines have no Lines.
type OrderSectionView struct {
	ID            string
	Date          string
	Customer      string
	PaymentMethod string
	Lines         []LineView
	Subtotal      string
	Paid          string
	Change        string
}

type LineView struct {
	Name      string
	Qty       string
	UnitPrice string
	Total     string
	Note      string
}

// SummaryBlockView is one grand-summary block.
type SummaryBlockView struct {
	Title   string
	Entries []SummaryEntryView
}

type SummaryEntryView struct {
	Label string
	Value string
}

// ReceiptView is a fully formatted single-transaction receipt.
type ReceiptView struct {
	Title    string
	Header   entity.ReceiptHeader
	Customer string
	Cashier  string
	Date     string
	Items    []LineView
	Total    string
	Paid     string
	Change   string
	Method   string
	Footer   []string
}

func (r *ReportRenderer) buildReportView(paid []entity.Order, agg *entity.Aggregation, now time.Time) *ReportView {
	f := r.report
	labels := r.labels

	view := &ReportView{
		Title:      r.opts.ReportTitle,
		Header:     r.opts.Header,
		Period:     "Tidak ada data",
		GrandTotal: f.Money(agg.Grand.Sales),
		PrintedAt:  f.Date(now),
		Footer:     r.opts.ReportFooter,
	}

	if len(paid) > 0 {
		times := make([]time.Time, 0, len(paid))
		for _, o := range paid {
			times = append(times, o.CreatedAt.Time)
		}
		view.Period = f.DateRange(times...)
	}

	if len(agg.UnpaidGroups) > 0 {
		section := &UnpaidSectionView{Total: f.Money(agg.UnpaidGrandTotal)}
		for _, g := range agg.UnpaidGroups {
			group := UnpaidGroupView{
				Date:     f.Date(g.Timestamp.Time),
				Customer: g.CustomerName,
				Subtotal: f.Money(g.TotalUnpaid),
			}
			for _, d := range g.Details {
				group.Lines = append(group.Lines, LineView{
					Name:  d.MenuName,
					Qty:   quantity(d.Quantity),
					Total: f.PlainMoney(d.TotalPrice),
					Note:  d.Note,
				})
			}
			section.Groups = append(section.Groups, group)
		}
		view.Unpaid = section
	}

	for i, order := range paid {
		subtotal := agg.OrderSubtotals[i].Subtotal

		section := OrderSectionView{
			ID:            order.ID.String(),
			Date:          f.Date(order.CreatedAt.Time),
			Customer:      orDefault(order.CustomerName, labels.GeneralCustomer),
			PaymentMethod: orDefault(order.PaymentMethod, "-"),
			Subtotal:      f.Money(subtotal),
			Paid:          f.Money(order.Paid.Decimal()),
			Change:        f.Money(OrderChange(order, subtotal)),
		}
		for _, line := range order.Details {
			section.Lines = append(section.Lines, LineView{
				Name:      orDefault(line.MenuName, labels.UnknownMenu),
				Qty:       quantity(line.Quantity.Float()),
				UnitPrice: f.Plain(line.UnitPrice.Float()),
				Total:     f.Plain(line.TotalPrice.Float()),
				Note:      line.Note,
			})
		}
		view.Orders = append(view.Orders, section)
	}

	view.Summaries = r.summaries(agg.Grand)
	return view
}

// summaries returns the non-empty grand-summary blocks in print order.
func (r *ReportRenderer) summaries(g entity.GrandTotals) []SummaryBlockView {
	blocks := []struct {
		title string
		tally *entity.Tally
		value func(decimal.Decimal) string
	}{
		{"Ringkasan Penjualan per Kategori", g.SoldByCategory, func(v decimal.Decimal) string { return v.String() + " item" }},
		{"Ringkasan Penjualan per Menu", g.SoldByMenu, func(v decimal.Decimal) string { return v.String() + " item" }},
		{"Total Pembayaran per Metode", g.PaidByMethod, r.report.Money},
		{"Jumlah Pembelian per Metode", g.CountByMethod, func(v decimal.Decimal) string { return v.String() + " pembelian" }},
	}

	var out []SummaryBlockView
	for _, b := range blocks {
		if b.tally.Len() == 0 {
			continue
		}
		block := SummaryBlockView{Title: b.title}
		for _, key := range b.tally.Keys() {
			block.Entries = append(block.Entries, SummaryEntryView{Label: key, Value: b.value(b.tally.Get(key))})
		}
		out = append(out, block)
	}
	return out
}

func (r *ReportRenderer) buildReceiptView(info entity.ReceiptInfo, now time.Time) *ReceiptView {
	f := r.receipt

	view := &ReceiptView{
		Title:    r.opts.ReceiptTitle,
		Header:   r.opts.Header,
		Customer: orDefault(info.Customer, r.labels.GeneralCustomer),
		Cashier:  orDefault(info.Cashier, "-"),
		Date:     f.Date(now),
		Total:    f.Amount(info.Total.Float()),
		Paid:     f.Amount(info.Paid.Float()),
		Change:   f.Amount(info.Change.Float()),
		Method:   info.PaymentMethodLabel,
		Footer:   r.opts.ReceiptFooter,
	}
	for _, item := range info.Items {
		view.Items = append(view.Items, LineView{
			Name:      orDefault(item.Name, r.labels.UnknownMenu),
			Qty:       quantity(item.Qty.Float()),
			UnitPrice: f.Amount(item.Price.Float()),
			Total:     f.Money(item.LineTotal()),
			Note:      item.Note,
		})
	}
	return view
}

func quantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

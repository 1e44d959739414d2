package service

import (
	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Labels are the names used when a record does not carry one.
type Labels struct {
	GeneralCustomer string
	DefaultPayment  string
	Uncategorized   string
	UnknownMenu     string
}

// DefaultLabels returns the Indonesian labels used by the till.
func DefaultLabels() Labels {
	return Labels{
		GeneralCustomer: "Umum",
		DefaultPayment:  "Tunai",
		Uncategorized:   "Tanpa Kategori",
		UnknownMenu:     "N/A",
	}
}

func (l Labels) withDefaults() Labels {
	d := DefaultLabels()
	if l.GeneralCustomer == "" {
		l.GeneralCustomer = d.GeneralCustomer
	}
	if l.DefaultPayment == "" {
		l.DefaultPayment = d.DefaultPayment
	}
	if l.Uncategorized == "" {
		l.Uncategorized = d.Uncategorized
	}
	if l.UnknownMenu == "" {
		l.UnknownMenu = d.UnknownMenu
	}
	return l
}

// ReportAggregator reduces paid orders and unpaid cart lines into totals.
type ReportAggregator interface {
	Aggregate(paid []entity.Order, unpaid []entity.UnpaidCartLine) (*entity.Aggregation, bool)
}

// Aggregator is the default ReportAggregator. It holds no state between calls.
type Aggregator struct {
	labels Labels
}

// NewAggregator creates an aggregator; empty labels fall back to DefaultLabels.
func NewAggregator(labels Labels) *Aggregator {
	return &Aggregator{labels: labels.withDefaults()}
}

// Labels returns the fallback labels in use.
func (a *Aggregator) Labels() Labels {
	return a.labels
}

// Aggregate groups unpaid lines per customer and computes per-order
// subtotals and grand totals. It returns false when both inputs are empty.
func (a *Aggregator) Aggregate(paid []entity.Order, unpaid []entity.UnpaidCartLine) (*entity.Aggregation, bool) {
	if len(paid) == 0 && len(unpaid) == 0 {
		return nil, false
	}

	agg := &entity.Aggregation{
		UnpaidGroups:   a.groupUnpaid(unpaid),
		OrderSubtotals: make([]entity.OrderSubtotal, 0, len(paid)),
		Grand:          entity.NewGrandTotals(),
	}
	for _, g := range agg.UnpaidGroups {
		agg.UnpaidGrandTotal = agg.UnpaidGrandTotal.Add(g.TotalUnpaid)
	}

	for _, order := range paid {
		agg.OrderSubtotals = append(agg.OrderSubtotals, entity.OrderSubtotal{
			OrderID:  order.ID,
			Subtotal: OrderSubtotal(order),
		})

		for _, line := range order.Details {
			qty := line.Quantity.Decimal()
			agg.Grand.Sales = agg.Grand.Sales.Add(line.TotalPrice.Decimal())
			agg.Grand.SoldByCategory.Add(orDefault(line.Category, a.labels.Uncategorized), qty)
			agg.Grand.SoldByMenu.Add(orDefault(line.MenuName, a.labels.UnknownMenu), qty)
		}

		method := orDefault(order.PaymentMethod, a.labels.DefaultPayment)
		agg.Grand.PaidByMethod.Add(method, order.Paid.Decimal())
		agg.Grand.CountByMethod.Add(method, decimal.NewFromInt(1))
	}

	return agg, true
}

func (a *Aggregator) groupUnpaid(lines []entity.UnpaidCartLine) []entity.CustomerGroup {
	groups := make([]entity.CustomerGroup, 0)
	index := make(map[string]int)

	for _, line := range lines {
		name := orDefault(line.CustomerName(), a.labels.GeneralCustomer)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, entity.CustomerGroup{
				CustomerName: name,
				Timestamp:    line.Timestamp,
			})
		}

		total := line.Quantity.Decimal().Mul(line.MenuDetail.Price.Decimal())

		groups[i].Details = append(groups[i].Details, entity.UnpaidDetail{
			MenuName:   orDefault(line.MenuName(), a.labels.UnknownMenu),
			Quantity:   line.Quantity.Float(),
			TotalPrice: total,
			Note:       line.Note,
		})
		groups[i].TotalUnpaid = groups[i].TotalUnpaid.Add(total)
	}
	return groups
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// OrderSubtotal sums the line totals of an order. The order's stored total
// is ignored.
func OrderSubtotal(order entity.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range order.Details {
		sum = sum.Add(line.TotalPrice.Decimal())
	}
	return sum
}

// OrderChange is the amount paid minus the recomputed subtotal. It is
// negative when the order was underpaid.
func OrderChange(order entity.Order, subtotal decimal.Decimal) decimal.Decimal {
	return order.Paid.Decimal().Sub(subtotal)
}

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/sangkips/kasir-receipt/internal/domain/repository"
	"github.com/sangkips/kasir-receipt/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReportService answers report requests: totals, CSV exports and printing
// stored order history.
type ReportService struct {
	orderRepo      repository.OrderRepository
	aggregator     ReportAggregator
	printerService *PrinterService
}

// NewReportService creates a new report service. orderRepo may be nil when
// no database is configured; history requests then fail.
func NewReportService(orderRepo repository.OrderRepository, aggregator ReportAggregator, printerService *PrinterService) *ReportService {
	return &ReportService{
		orderRepo:      orderRepo,
		aggregator:     aggregator,
		printerService: printerService,
	}
}

// Summarize computes the report totals without rendering anything.
func (s *ReportService) Summarize(paid []entity.Order, unpaid []entity.UnpaidCartLine) (*entity.Aggregation, bool) {
	return s.aggregator.Aggregate(paid, unpaid)
}

// OrderRow is one line of the order CSV export.
type OrderRow struct {
	OrderID       string          `csv:"order_id"`
	CreatedAt     string          `csv:"created_at"`
	Customer      string          `csv:"customer"`
	PaymentMethod string          `csv:"payment_method"`
	Items         int             `csv:"items"`
	Subtotal      decimal.Decimal `csv:"subtotal"`
	Paid          decimal.Decimal `csv:"paid"`
	Change        decimal.Decimal `csv:"change"`
}

func orderRows(paid []entity.Order) []*OrderRow {
	rows := make([]*OrderRow, 0, len(paid))
	for _, order := range paid {
		subtotal := OrderSubtotal(order)
		row := &OrderRow{
			OrderID:       order.ID.String(),
			Customer:      order.CustomerName,
			PaymentMethod: order.PaymentMethod,
			Items:         len(order.Details),
			Subtotal:      subtotal,
			Paid:          order.Paid.Decimal(),
			Change:        OrderChange(order, subtotal),
		}
		if order.CreatedAt.Valid() {
			row.CreatedAt = order.CreatedAt.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	return rows
}

// ExportCSV writes one row per paid order. Subtotals are recomputed from the
// order lines, as on the printed report.
func (s *ReportService) ExportCSV(w io.Writer, paid []entity.Order) error {
	if err := gocsv.Marshal(orderRows(paid), w); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}

// ExportXLSX writes a workbook with the per-order rows on one sheet and the
// per-menu and per-method totals on another.
func (s *ReportService) ExportXLSX(w io.Writer, paid []entity.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	const orders, summary = "Transaksi", "Ringkasan"
	if err := f.SetSheetName("Sheet1", orders); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}

	header := []interface{}{"order_id", "created_at", "customer", "payment_method", "items", "subtotal", "paid", "change"}
	if err := f.SetSheetRow(orders, "A1", &header); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	for i, r := range orderRows(paid) {
		row := []interface{}{
			r.OrderID, r.CreatedAt, r.Customer, r.PaymentMethod, r.Items,
			r.Subtotal.InexactFloat64(), r.Paid.InexactFloat64(), r.Change.InexactFloat64(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(orders, cell, &row); err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}
	}

	line := 1
	put := func(values ...interface{}) error {
		cell, _ := excelize.CoordinatesToCellName(1, line)
		line++
		return f.SetSheetRow(summary, cell, &values)
	}
	if agg, ok := s.aggregator.Aggregate(paid, nil); ok {
		blocks := []struct {
			title string
			tally *entity.Tally
		}{
			{"sold_by_menu", agg.Grand.SoldByMenu},
			{"sold_by_category", agg.Grand.SoldByCategory},
			{"paid_by_payment_method", agg.Grand.PaidByMethod},
			{"count_by_payment_method", agg.Grand.CountByMethod},
		}
		if err := put("sales", agg.Grand.Sales.InexactFloat64()); err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}
		for _, b := range blocks {
			for _, key := range b.tally.Keys() {
				if err := put(b.title, key, b.tally.Get(key).InexactFloat64()); err != nil {
					return fmt.Errorf("export xlsx: %w", err)
				}
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	return nil
}

// History loads stored paid orders created inside [from, to] together with
// every open cart line.
func (s *ReportService) History(ctx context.Context, from, to *time.Time) ([]entity.Order, []entity.UnpaidCartLine, error) {
	if s.orderRepo == nil {
		return nil, nil, apperror.NewAppError(http.StatusServiceUnavailable, "Order history is not configured")
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, apperror.NewBadRequestError("'to' must not be before 'from'")
	}

	paid, err := s.orderRepo.ListPaid(ctx, &repository.OrderFilterParams{StartDate: from, EndDate: to})
	if err != nil {
		return nil, nil, fmt.Errorf("list paid orders: %w", err)
	}
	unpaid, err := s.orderRepo.ListUnpaidCartLines(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list unpaid cart lines: %w", err)
	}
	return paid, unpaid, nil
}

// PrintHistory prints a report of the stored order history.
func (s *ReportService) PrintHistory(ctx context.Context, from, to *time.Time) (*PrintResult, error) {
	paid, unpaid, err := s.History(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.printerService.PrintReport(ctx, paid, unpaid)
}

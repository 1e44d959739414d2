package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/sangkips/kasir-receipt/internal/domain/repository"
	"github.com/sangkips/kasir-receipt/pkg/apperror"
	"github.com/sangkips/kasir-receipt/pkg/printer"
	"github.com/xuri/excelize/v2"
)

type fakeOrderRepo struct {
	paid       []entity.Order
	unpaid     []entity.UnpaidCartLine
	err        error
	lastParams *repository.OrderFilterParams
}

func (r *fakeOrderRepo) ListPaid(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, error) {
	r.lastParams = params
	return r.paid, r.err
}

func (r *fakeOrderRepo) ListUnpaidCartLines(ctx context.Context) ([]entity.UnpaidCartLine, error) {
	return r.unpaid, r.err
}

func TestReportService_ExportCSV(t *testing.T) {
	svc := NewReportService(nil, NewAggregator(Labels{}), nil)

	short := latteOrder()
	short.ID = "TRX-002"
	short.Paid = 60000
	short.CreatedAt = entity.Timestamp{}

	var buf bytes.Buffer
	if err := svc.ExportCSV(&buf, []entity.Order{latteOrder(), short}); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), buf.String())
	}
	if want := "order_id,created_at,customer,payment_method,items,subtotal,paid,change"; lines[0] != want {
		t.Errorf("header = %q, want %q", lines[0], want)
	}
	if !strings.HasPrefix(lines[1], "TRX-001,2026-10-15T02:30:00Z,") || !strings.HasSuffix(lines[1], ",2,65000,70000,5000") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "TRX-002,,") || !strings.HasSuffix(lines[2], ",-5000") {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestReportService_ExportCSVKeepsExactAmounts(t *testing.T) {
	svc := NewReportService(nil, NewAggregator(Labels{}), nil)
	order := entity.Order{
		ID:   "DEC",
		Paid: 0.3,
		Details: []entity.OrderDetailLine{
			{MenuName: "Permen", Quantity: 1, TotalPrice: 0.1},
			{MenuName: "Permen", Quantity: 1, TotalPrice: 0.2},
		},
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(&buf, []entity.Order{order}); err != nil {
		t.Fatalf("ExportCSV() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if want := "DEC,,,,2,0.3,0.3,0"; lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestReportService_History(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)

	t.Run("no database", func(t *testing.T) {
		svc := NewReportService(nil, NewAggregator(Labels{}), nil)
		_, _, err := svc.History(context.Background(), nil, nil)
		if appErr := apperror.GetAppError(err); appErr.Code != http.StatusServiceUnavailable {
			t.Errorf("code = %d, want 503", appErr.Code)
		}
	})

	t.Run("reversed range", func(t *testing.T) {
		svc := NewReportService(&fakeOrderRepo{}, NewAggregator(Labels{}), nil)
		_, _, err := svc.History(context.Background(), &to, &from)
		if appErr := apperror.GetAppError(err); appErr.Code != http.StatusBadRequest {
			t.Errorf("code = %d, want 400", appErr.Code)
		}
	})

	t.Run("passes the range through", func(t *testing.T) {
		repo := &fakeOrderRepo{
			paid:   []entity.Order{latteOrder()},
			unpaid: []entity.UnpaidCartLine{cartLine("Ayu", "Teh", 1, 10000)},
		}
		svc := NewReportService(repo, NewAggregator(Labels{}), nil)

		paid, unpaid, err := svc.History(context.Background(), &from, &to)
		if err != nil {
			t.Fatal(err)
		}
		if len(paid) != 1 || len(unpaid) != 1 {
			t.Errorf("got %d paid, %d unpaid", len(paid), len(unpaid))
		}
		if repo.lastParams.StartDate != &from || repo.lastParams.EndDate != &to {
			t.Error("date range not forwarded to the repository")
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		svc := NewReportService(&fakeOrderRepo{err: boom}, NewAggregator(Labels{}), nil)
		if _, _, err := svc.History(context.Background(), nil, nil); !errors.Is(err, boom) {
			t.Errorf("err = %v, want wrapped repository error", err)
		}
	})
}

func TestReportService_PrintHistory(t *testing.T) {
	mem := printer.NewMemoryPrinter()
	repo := &fakeOrderRepo{paid: []entity.Order{latteOrder()}}
	svc := NewReportService(repo, NewAggregator(Labels{}), newTestPrinterService(mem, "memory", time.Second))

	res, err := svc.PrintHistory(context.Background(), nil, nil)
	if err != nil || !res.Printed {
		t.Fatalf("PrintHistory() = %+v, %v", res, err)
	}
	if mem.Jobs() != 1 {
		t.Errorf("jobs = %d, want 1", mem.Jobs())
	}
}

func TestReportService_Summarize(t *testing.T) {
	svc := NewReportService(nil, NewAggregator(Labels{}), nil)

	if _, ok := svc.Summarize(nil, nil); ok {
		t.Error("Summarize(empty) reported data")
	}
	agg, ok := svc.Summarize([]entity.Order{latteOrder()}, nil)
	if !ok || !agg.Grand.Sales.Equal(rupiah(65000)) {
		t.Errorf("Summarize() = %+v, %v", agg, ok)
	}
}

func TestReportService_ExportXLSX(t *testing.T) {
	svc := NewReportService(nil, NewAggregator(Labels{}), nil)

	var buf bytes.Buffer
	if err := svc.ExportXLSX(&buf, []entity.Order{latteOrder()}); err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Transaksi")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0][0] != "order_id" || rows[1][0] != "TRX-001" {
		t.Fatalf("order rows = %v", rows)
	}

	summary, err := f.GetRows("Ringkasan")
	if err != nil {
		t.Fatal(err)
	}
	if len(summary) == 0 || summary[0][0] != "sales" {
		t.Fatalf("summary rows = %v", summary)
	}
	if summary[1][0] != "sold_by_menu" || summary[1][1] != "Latte" {
		t.Errorf("first tally row = %v", summary[1])
	}
}

package service

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/sangkips/kasir-receipt/pkg/format"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var fixedNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestRenderer(agg ReportAggregator, enc DocumentEncoder) *ReportRenderer {
	return NewReportRenderer(RendererConfig{
		Options: RendererOptions{
			Header:        entity.ReceiptHeader{StoreName: "Stay High Coffee", AddressLines: []string{"Metland Sektor 7"}},
			ReceiptTitle:  "Struk Pembelian",
			ReportTitle:   "LAPORAN TRANSAKSI",
			ReceiptFooter: []string{"Terima kasih telah berbelanja!"},
			ReportFooter:  "Terima kasih atas kerja keras Anda!",
		},
		Aggregator:       agg,
		ReportFormatter:  format.New(format.Options{Locale: "id", Timezone: "Asia/Jakarta", Fraction: format.FractionLocale}),
		ReceiptFormatter: format.New(format.Options{Locale: "id", Timezone: "Asia/Jakarta", Fraction: format.FractionNone}),
		Encoder:          enc,
		Logger:           quietLogger(),
		Clock:            func() time.Time { return fixedNow },
	})
}

func rupiah(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func latteOrder() entity.Order {
	return entity.Order{
		ID:        "TRX-001",
		CreatedAt: entity.NewTimestamp(time.Date(2026, 10, 15, 2, 30, 0, 0, time.UTC)),
		Paid:      70000,
		Total:     999, // stale stored total
		Details: []entity.OrderDetailLine{
			{MenuName: "Latte", Category: "Kopi", Quantity: 2, UnitPrice: 25000, TotalPrice: 50000},
			{MenuName: "Croissant", Category: "Pastry", Quantity: 1, UnitPrice: 15000, TotalPrice: 15000},
		},
	}
}

func cartLine(customer, menu string, qty, price float64) entity.UnpaidCartLine {
	line := entity.UnpaidCartLine{
		Timestamp:  entity.NewTimestamp(time.Date(2026, 10, 15, 3, 0, 0, 0, time.UTC)),
		MenuDetail: entity.CartMenuDetail{Menu: &entity.CartMenu{Name: menu}, Price: entity.Number(price)},
		Quantity:   entity.Number(qty),
	}
	if customer != "" {
		line.Customer = &entity.CartCustomer{Customer: customer}
	}
	return line
}

type countingAggregator struct {
	mu    sync.Mutex
	calls int
	inner ReportAggregator
}

func (c *countingAggregator) Aggregate(paid []entity.Order, unpaid []entity.UnpaidCartLine) (*entity.Aggregation, bool) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.Aggregate(paid, unpaid)
}

func (c *countingAggregator) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// fakeSurface is a print surface whose loading is driven by the test.
type fakeSurface struct {
	mu         sync.Mutex
	connected  bool
	autoLoad   bool
	opens      int
	prints     int
	buf        bytes.Buffer
	loaded     chan struct{}
	printErr   error
	printPanic bool
	loadedSeen bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{connected: true, autoLoad: true, loaded: make(chan struct{})}
}

func (s *fakeSurface) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opens++
	s.buf.Reset()
	s.loaded = make(chan struct{})
	return nil
}

func (s *fakeSurface) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *fakeSurface) Close() error {
	if s.autoLoad {
		s.finishLoading()
	}
	return nil
}

func (s *fakeSurface) finishLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadedSeen = true
	close(s.loaded)
}

func (s *fakeSurface) Loaded() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

func (s *fakeSurface) Print() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loadedSeen {
		panic("print issued before the document finished loading")
	}
	if s.printPanic {
		panic("window.print is not available")
	}
	s.prints++
	return s.printErr
}

func (s *fakeSurface) IsConnected() bool {
	return s.connected
}

func (s *fakeSurface) content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func (s *fakeSurface) stats() (opens, prints int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens, s.prints
}

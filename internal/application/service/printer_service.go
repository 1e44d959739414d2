package service

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/sangkips/kasir-receipt/pkg/printer"
	"github.com/sirupsen/logrus"
)

// PrinterService owns the configured printer and runs print cycles on it,
// one at a time.
type PrinterService struct {
	printer     printer.Printer
	renderer    *ReportRenderer
	printerType string
	format      string
	timeout     time.Duration
	log         logrus.FieldLogger

	mu sync.Mutex
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	renderer *ReportRenderer,
	printerType, format string,
	timeout time.Duration,
	log logrus.FieldLogger,
) *PrinterService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PrinterService{
		printer:     p,
		renderer:    renderer,
		printerType: printerType,
		format:      format,
		timeout:     timeout,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured  bool   `json:"configured"`
	Connected   bool   `json:"connected"`
	Type        string `json:"type"`
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
}

// PrintResult is the outcome of a settled print job.
type PrintResult struct {
	JobID   string `json:"job_id"`
	Printed bool   `json:"printed"`
}

// Preview is a rendered document that was not sent to a device.
type Preview struct {
	Content     []byte
	ContentType string
	Printed     bool
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured:  s.printerType != "none" && s.printerType != "",
		Connected:   s.printer != nil && s.printer.IsConnected(),
		Type:        s.printerType,
		Format:      s.format,
		ContentType: s.renderer.ContentType(),
	}
}

// TestPrint prints a sample receipt.
func (s *PrinterService) TestPrint(ctx context.Context) (*PrintResult, error) {
	info := entity.ReceiptInfo{
		Customer: "PRINTER TEST",
		Cashier:  "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Qty: 1, Price: 10000},
			{Name: "Test Item 2", Qty: 2, Price: 5000},
		},
		Total:              20000,
		Paid:               20000,
		PaymentMethodLabel: "Tunai",
	}
	return s.PrintReceipt(ctx, info)
}

// PrintReceipt prints a single-transaction receipt on the device.
func (s *PrinterService) PrintReceipt(ctx context.Context, info entity.ReceiptInfo) (*PrintResult, error) {
	return s.run(ctx, func(surface printer.Surface) *PrintJob {
		return s.renderer.PrintReceipt(info, surface)
	})
}

// PrintReport prints a transaction report on the device.
func (s *PrinterService) PrintReport(ctx context.Context, paid []entity.Order, unpaid []entity.UnpaidCartLine) (*PrintResult, error) {
	return s.run(ctx, func(surface printer.Surface) *PrintJob {
		return s.renderer.RenderAndPrint(paid, surface, unpaid)
	})
}

// Preview renders a report through an in-memory surface and returns the
// document instead of printing it.
func (s *PrinterService) Preview(ctx context.Context, paid []entity.Order, unpaid []entity.UnpaidCartLine) (*Preview, error) {
	mem := printer.NewMemoryPrinter()
	job := s.renderer.RenderAndPrint(paid, printer.NewDeviceSurface(mem), unpaid)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	printed, err := job.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return &Preview{
		Content:     mem.Last(),
		ContentType: s.renderer.ContentType(),
		Printed:     printed,
	}, nil
}

// run holds the device until the job settles, even when the caller stops
// waiting first.
func (s *PrinterService) run(ctx context.Context, start func(printer.Surface) *PrintJob) (*PrintResult, error) {
	s.mu.Lock()
	job := start(printer.NewDeviceSurface(s.printer))
	go func() {
		<-job.Done()
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log := s.log.WithField("job_id", job.ID)
	printed, err := job.Wait(ctx)
	if err != nil {
		log.WithError(err).Warn("print job did not complete")
		return nil, err
	}
	if !printed {
		log.Info("print job finished with nothing to print")
	}
	return &PrintResult{JobID: job.ID.String(), Printed: printed}, nil
}

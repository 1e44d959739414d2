package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/sangkips/kasir-receipt/pkg/printer"
)

// blockingPrinter holds every Print call until release is closed.
type blockingPrinter struct {
	release chan struct{}
	calls   chan struct{}
}

func (p *blockingPrinter) Print(data []byte) error {
	p.calls <- struct{}{}
	<-p.release
	return nil
}

func (p *blockingPrinter) Close() error {
	return nil
}

func (p *blockingPrinter) IsConnected() bool {
	return true
}

func newTestPrinterService(p printer.Printer, printerType string, timeout time.Duration) *PrinterService {
	return NewPrinterService(p, newTestRenderer(nil, nil), printerType, "html", timeout, quietLogger())
}

func TestPrinterService_GetStatus(t *testing.T) {
	tests := []struct {
		name          string
		printer       printer.Printer
		printerType   string
		wantConfig    bool
		wantConnected bool
	}{
		{"memory printer", printer.NewMemoryPrinter(), "memory", true, true},
		{"no printer", printer.NewNullPrinter(), "none", false, false},
		{"unset type", printer.NewNullPrinter(), "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := newTestPrinterService(tt.printer, tt.printerType, time.Second).GetStatus()
			if status.Configured != tt.wantConfig || status.Connected != tt.wantConnected {
				t.Errorf("status = %+v", status)
			}
			if status.ContentType != "text/html; charset=utf-8" {
				t.Errorf("ContentType = %q", status.ContentType)
			}
		})
	}
}

func TestPrinterService_PrintReport(t *testing.T) {
	mem := printer.NewMemoryPrinter()
	svc := newTestPrinterService(mem, "memory", time.Second)

	res, err := svc.PrintReport(context.Background(), []entity.Order{latteOrder()}, nil)
	if err != nil {
		t.Fatalf("PrintReport() error = %v", err)
	}
	if !res.Printed || res.JobID == "" {
		t.Errorf("result = %+v", res)
	}
	if mem.Jobs() != 1 {
		t.Errorf("jobs = %d, want 1", mem.Jobs())
	}

	res, err = svc.PrintReport(context.Background(), nil, nil)
	if err != nil || res.Printed {
		t.Errorf("empty report = %+v, %v; want not printed", res, err)
	}
	if mem.Jobs() != 1 {
		t.Errorf("empty report reached the printer")
	}
}

func TestPrinterService_NotConnected(t *testing.T) {
	svc := newTestPrinterService(printer.NewNullPrinter(), "none", time.Second)

	_, err := svc.PrintReport(context.Background(), []entity.Order{latteOrder()}, nil)
	if !errors.Is(err, ErrInvalidSurface) {
		t.Fatalf("err = %v, want ErrInvalidSurface", err)
	}

	// The device lock must be free again.
	_, err = svc.TestPrint(context.Background())
	if !errors.Is(err, ErrInvalidSurface) {
		t.Fatalf("second call err = %v, want ErrInvalidSurface", err)
	}
}

func TestPrinterService_TestPrint(t *testing.T) {
	mem := printer.NewMemoryPrinter()
	svc := newTestPrinterService(mem, "memory", time.Second)

	res, err := svc.TestPrint(context.Background())
	if err != nil || !res.Printed {
		t.Fatalf("TestPrint() = %+v, %v", res, err)
	}
	if !bytes.Contains(mem.Last(), []byte("PRINTER TEST")) {
		t.Error("test page was not printed")
	}
}

func TestPrinterService_Preview(t *testing.T) {
	mem := printer.NewMemoryPrinter()
	svc := newTestPrinterService(mem, "memory", time.Second)

	preview, err := svc.Preview(context.Background(), []entity.Order{latteOrder()}, nil)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if !preview.Printed || !strings.Contains(string(preview.Content), "TOTAL PENDAPATAN") {
		t.Errorf("preview = printed %v, %d bytes", preview.Printed, len(preview.Content))
	}
	if mem.Jobs() != 0 {
		t.Error("preview reached the configured printer")
	}
}

func TestPrinterService_Timeout(t *testing.T) {
	p := &blockingPrinter{release: make(chan struct{}), calls: make(chan struct{}, 2)}
	svc := newTestPrinterService(p, "network", 50*time.Millisecond)

	_, err := svc.PrintReport(context.Background(), []entity.Order{latteOrder()}, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}

	// A second job has to wait for the first one to finish on the device.
	done := make(chan error, 1)
	go func() {
		_, err := svc.PrintReport(context.Background(), []entity.Order{latteOrder()}, nil)
		done <- err
	}()

	<-p.calls
	select {
	case <-p.calls:
		t.Fatal("second job reached the device while the first was still printing")
	case <-time.After(20 * time.Millisecond):
	}
	close(p.release)

	if err := <-done; err != nil && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("second job err = %v", err)
	}
}

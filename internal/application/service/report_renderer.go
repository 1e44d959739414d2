package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/sangkips/kasir-receipt/pkg/format"
	"github.com/sangkips/kasir-receipt/pkg/printer"
	"github.com/sirupsen/logrus"
)

// RendererOptions carries the store branding printed on documents.
type RendererOptions struct {
	Header        entity.ReceiptHeader
	ReceiptTitle  string
	ReportTitle   string
	ReceiptFooter []string
	ReportFooter  string
	// NoPaymentMarkers are payment labels that mean no method was chosen.
	NoPaymentMarkers []string
}

// RendererConfig wires a ReportRenderer. Nil collaborators get defaults.
type RendererConfig struct {
	Options          RendererOptions
	Labels           Labels
	Aggregator       ReportAggregator
	ReportFormatter  *format.Formatter
	ReceiptFormatter *format.Formatter
	Encoder          DocumentEncoder
	Logger           logrus.FieldLogger
	Clock            func() time.Time
}

// ReportRenderer turns orders into print documents and drives one print
// cycle per call. It keeps no state between calls; serializing calls that
// share a surface is up to the caller.
type ReportRenderer struct {
	opts       RendererOptions
	labels     Labels
	aggregator ReportAggregator
	report     *format.Formatter
	receipt    *format.Formatter
	encoder    DocumentEncoder
	log        logrus.FieldLogger
	now        func() time.Time
}

// NewReportRenderer creates a renderer.
func NewReportRenderer(cfg RendererConfig) *ReportRenderer {
	r := &ReportRenderer{
		opts:       cfg.Options,
		labels:     cfg.Labels.withDefaults(),
		aggregator: cfg.Aggregator,
		report:     cfg.ReportFormatter,
		receipt:    cfg.ReceiptFormatter,
		encoder:    cfg.Encoder,
		log:        cfg.Logger,
		now:        cfg.Clock,
	}
	if r.aggregator == nil {
		r.aggregator = NewAggregator(r.labels)
	}
	if r.report == nil {
		r.report = format.New(format.Options{Fraction: format.FractionLocale})
	}
	if r.receipt == nil {
		r.receipt = format.New(format.Options{Fraction: format.FractionNone})
	}
	if r.encoder == nil {
		r.encoder = NewHTMLEncoder()
	}
	if r.log == nil {
		r.log = logrus.StandardLogger()
	}
	if r.now == nil {
		r.now = time.Now
	}
	if len(r.opts.NoPaymentMarkers) == 0 {
		r.opts.NoPaymentMarkers = []string{"Unknown"}
	}
	return r
}

// ContentType is the media type of the documents this renderer produces.
func (r *ReportRenderer) ContentType() string {
	return r.encoder.ContentType()
}

// RenderReport assembles the complete report document. The boolean is false
// when there is nothing to report.
func (r *ReportRenderer) RenderReport(paid []entity.Order, unpaid []entity.UnpaidCartLine) ([]byte, bool, error) {
	agg, ok := r.aggregator.Aggregate(paid, unpaid)
	if !ok {
		return nil, false, nil
	}

	doc, err := r.encoder.EncodeReport(r.buildReportView(paid, agg, r.now()))
	if err != nil {
		return nil, false, fmt.Errorf("render report: %w", err)
	}
	return doc, true, nil
}

// RenderAndPrint renders a report of paid orders and unpaid cart lines and
// prints it on surface.
//
// The job fails with ErrInvalidSurface before any work when surface is not
// usable, settles false when both inputs are empty, and otherwise settles
// true once the print command was issued after the surface finished loading.
func (r *ReportRenderer) RenderAndPrint(paid []entity.Order, surface printer.Surface, unpaid []entity.UnpaidCartLine) *PrintJob {
	if !usable(surface) {
		r.log.Error("report not printed: print surface is not usable")
		return settledJob(false, ErrInvalidSurface)
	}

	doc, ok, err := r.RenderReport(paid, unpaid)
	if err != nil {
		return settledJob(false, err)
	}
	if !ok {
		r.log.Warn("no paid or unpaid transactions to print")
		return settledJob(false, nil)
	}

	return r.handoff(surface, doc, logrus.Fields{
		"paid_orders":  len(paid),
		"unpaid_lines": len(unpaid),
	})
}

// PrintReceipt prints a single-transaction receipt. A receipt without a
// chosen payment method is not printed and the job settles false.
func (r *ReportRenderer) PrintReceipt(info entity.ReceiptInfo, surface printer.Surface) *PrintJob {
	if !usable(surface) {
		r.log.Error("receipt not printed: print surface is not usable")
		return settledJob(false, ErrInvalidSurface)
	}

	method := strings.TrimSpace(info.PaymentMethodLabel)
	if method == "" || slices.Contains(r.opts.NoPaymentMarkers, method) {
		r.log.Warn("no payment method selected, receipt not printed")
		return settledJob(false, nil)
	}

	doc, err := r.encoder.EncodeReceipt(r.buildReceiptView(info, r.now()))
	if err != nil {
		return settledJob(false, fmt.Errorf("render receipt: %w", err))
	}

	return r.handoff(surface, doc, logrus.Fields{"items": len(info.Items)})
}

// handoff writes doc to the surface and issues the print command only after
// the surface reports the document as loaded.
func (r *ReportRenderer) handoff(surface printer.Surface, doc []byte, fields logrus.Fields) *PrintJob {
	job := newPrintJob()
	log := r.log.WithFields(fields).WithField("job_id", job.ID)

	if err := surface.Open(); err != nil {
		job.settle(false, &PrintError{Stage: "open", Err: err})
		return job
	}
	loaded := surface.Loaded()

	if _, err := surface.Write(doc); err != nil {
		_ = surface.Close()
		job.settle(false, &PrintError{Stage: "write", Err: err})
		return job
	}
	if err := surface.Close(); err != nil {
		job.settle(false, &PrintError{Stage: "close", Err: err})
		return job
	}

	go func() {
		<-loaded
		if err := issuePrint(surface); err != nil {
			log.WithError(err).Error("print command failed")
			job.settle(false, &PrintError{Stage: "print", Err: err})
			return
		}
		log.Info("document sent to printer")
		job.settle(true, nil)
	}()

	return job
}

// issuePrint calls Print, turning a panic inside the surface into an error.
func issuePrint(surface printer.Surface) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("print surface panicked: %v", rec)
		}
	}()
	return surface.Print()
}

func usable(surface printer.Surface) bool {
	return surface != nil && surface.IsConnected()
}

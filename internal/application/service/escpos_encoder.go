package service

import (
	"strings"

	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/sangkips/kasir-receipt/pkg/printer"
)

// ESCPOSEncoder renders raw ESC/POS byte streams for thermal printers.
type ESCPOSEncoder struct {
	width int
}

// NewESCPOSEncoder creates an encoder for the given character width.
func NewESCPOSEncoder(charWidth int) *ESCPOSEncoder {
	return &ESCPOSEncoder{width: charWidth}
}

func (e *ESCPOSEncoder) ContentType() string {
	return "application/vnd.escpos"
}

func (e *ESCPOSEncoder) EncodeReport(v *ReportView) ([]byte, error) {
	doc := printer.NewDocument(e.width)
	e.header(doc, v.Header)

	doc.SetAlign(printer.AlignCenter).
		Separator('-').
		SetBold(true).
		Text(strings.ToUpper(v.Title)).
		SetBold(false).
		Wrap("Periode: " + v.Period).
		SetAlign(printer.AlignLeft)

	if v.Unpaid != nil {
		doc.Separator('=').
			SetAlign(printer.AlignCenter).
			SetBold(true).
			Text("Pesanan Belum Dibayar").
			SetBold(false).
			SetAlign(printer.AlignLeft)
		for _, g := range v.Unpaid.Groups {
			doc.Separator('-').
				Wrap("Tanggal: " + g.Date).
				Wrap("Customer: " + g.Customer)
			for _, l := range g.Lines {
				doc.ItemLine(l.Qty, l.Name, l.Total)
				if l.Note != "" {
					doc.Wrap("  Catatan: " + l.Note)
				}
			}
			doc.KeyValue("Subtotal:", g.Subtotal)
		}
		doc.Separator('-').
			SetBold(true).
			KeyValue("Total belum dibayar:", v.Unpaid.Total).
			SetBold(false)
	}

	doc.Separator('=')
	if len(v.Orders) == 0 {
		doc.Wrap("Tidak ada riwayat pesanan yang sudah dibayar dalam filter ini.")
	}
	for _, o := range v.Orders {
		if len(o.Lines) == 0 {
			doc.Text("Tidak ada data untuk order ini.").Separator('-')
			continue
		}
		doc.Wrap("ID Transaksi: " + o.ID).
			Wrap("Tanggal: " + o.Date).
			Wrap("Pelanggan: " + o.Customer).
			Wrap("Metode: " + o.PaymentMethod)
		for _, l := range o.Lines {
			doc.ItemLine(l.Qty, l.Name, l.Total)
			doc.TextF("  @ %s", l.UnitPrice)
		}
		doc.SetBold(true).
			KeyValue("Subtotal:", o.Subtotal).
			SetBold(false).
			KeyValue("Dibayar:", o.Paid).
			KeyValue("Kembalian:", o.Change).
			Separator('-')
	}

	doc.SetBold(true).
		KeyValue("TOTAL PENDAPATAN:", v.GrandTotal).
		SetBold(false)

	for _, s := range v.Summaries {
		doc.Separator('-').SetBold(true).Text(s.Title + ":").SetBold(false)
		for _, entry := range s.Entries {
			doc.KeyValue("- "+entry.Label, entry.Value)
		}
	}

	doc.Separator('-').
		SetAlign(printer.AlignCenter).
		Wrap("Laporan dicetak pada: " + v.PrintedAt)
	if v.Footer != "" {
		doc.Wrap(v.Footer)
	}
	doc.SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes(), nil
}

func (e *ESCPOSEncoder) EncodeReceipt(v *ReceiptView) ([]byte, error) {
	doc := printer.NewDocument(e.width)
	e.header(doc, v.Header)

	if v.Title != "" {
		doc.SetFontSize(printer.FontDouble).
			Wrap(strings.ToUpper(v.Title)).
			SetFontSize(printer.FontNormal)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Customer:", v.Customer).
		KeyValue("Cashier:", v.Cashier).
		Wrap("Date: " + v.Date).
		Separator('-')

	for _, item := range v.Items {
		doc.ItemLine(item.Qty, item.Name, item.Total)
		if item.Note != "" {
			doc.Wrap("  " + item.Note)
		}
	}

	doc.Separator('-').
		SetBold(true).
		KeyValue("TOTAL:", v.Total).
		SetBold(false).
		KeyValue("Paid:", v.Paid).
		KeyValue("Change:", v.Change).
		KeyValue("Method:", v.Method).
		Separator('-')

	doc.SetAlign(printer.AlignCenter).LineFeed()
	for _, line := range v.Footer {
		doc.Wrap(line)
	}
	// Receipts are handed to the customer, so they are cut off completely.
	doc.SetAlign(printer.AlignLeft).
		FeedLines(3).
		Cut()

	return doc.Bytes(), nil
}

func (e *ESCPOSEncoder) header(doc *printer.Document, h entity.ReceiptHeader) {
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontTall).
		Wrap(h.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	for _, line := range h.AddressLines {
		doc.Wrap(line)
	}
}

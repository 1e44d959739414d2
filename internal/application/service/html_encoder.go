package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// DocumentEncoder turns formatted views into the bytes a surface prints.
type DocumentEncoder interface {
	EncodeReport(v *ReportView) ([]byte, error)
	EncodeReceipt(v *ReceiptView) ([]byte, error)
	ContentType() string
}

// NewEncoder returns the encoder for a configured document format:
// "html" (default) or "escpos".
func NewEncoder(name string, charWidth int) (DocumentEncoder, error) {
	switch strings.ToLower(name) {
	case "", "html":
		return NewHTMLEncoder(), nil
	case "escpos":
		return NewESCPOSEncoder(charWidth), nil
	default:
		return nil, fmt.Errorf("unknown document format %q (use html or escpos)", name)
	}
}

// HTMLEncoder renders self-contained HTML documents laid out for 58mm paper.
type HTMLEncoder struct {
	tmpl *template.Template
}

// NewHTMLEncoder creates an HTMLEncoder.
func NewHTMLEncoder() *HTMLEncoder {
	return &HTMLEncoder{tmpl: documentTemplates}
}

func (e *HTMLEncoder) EncodeReport(v *ReportView) ([]byte, error) {
	return e.execute("report.html", v)
}

func (e *HTMLEncoder) EncodeReceipt(v *ReceiptView) ([]byte, error) {
	return e.execute("receipt.html", v)
}

func (e *HTMLEncoder) ContentType() string {
	return "text/html; charset=utf-8"
}

func (e *HTMLEncoder) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

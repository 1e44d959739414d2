package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/kasir-receipt/internal/application/service"
	"github.com/sangkips/kasir-receipt/internal/presentation/http/dto/request"
	"github.com/sangkips/kasir-receipt/internal/presentation/http/dto/response"
	"github.com/sangkips/kasir-receipt/pkg/apperror"
)

// ReportHandler handles transaction report requests.
type ReportHandler struct {
	reportService  *service.ReportService
	printerService *service.PrinterService
	loc            *time.Location
}

// NewReportHandler creates a new report handler. loc is the zone bare
// dates in history queries are read in.
func NewReportHandler(reportService *service.ReportService, printerService *service.PrinterService, loc *time.Location) *ReportHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ReportHandler{
		reportService:  reportService,
		printerService: printerService,
		loc:            loc,
	}
}

func bindReport(c *gin.Context) (*request.ReportRequest, bool) {
	var req request.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return nil, false
	}
	return &req, true
}

func printed(c *gin.Context, res *service.PrintResult) {
	c.Header("X-Print-Job-ID", res.JobID)
	if !res.Printed {
		response.OK(c, "No paid or unpaid transactions to print", response.NewPrintResponse(res))
		return
	}
	response.OK(c, "Report sent to printer", response.NewPrintResponse(res))
}

// Print renders the posted records and prints the report.
func (h *ReportHandler) Print(c *gin.Context) {
	req, ok := bindReport(c)
	if !ok {
		return
	}

	res, err := h.printerService.PrintReport(c.Request.Context(), req.Orders, req.UnpaidOrders)
	if err != nil {
		response.Error(c, printFailure(err))
		return
	}
	printed(c, res)
}

// Preview returns the rendered report document instead of printing it.
func (h *ReportHandler) Preview(c *gin.Context) {
	req, ok := bindReport(c)
	if !ok {
		return
	}

	preview, err := h.printerService.Preview(c.Request.Context(), req.Orders, req.UnpaidOrders)
	if err != nil {
		response.Error(c, printFailure(err))
		return
	}
	if !preview.Printed {
		response.OK(c, "No paid or unpaid transactions to preview", response.PrintResponse{})
		return
	}
	c.Data(http.StatusOK, preview.ContentType, preview.Content)
}

// Summary returns the report totals as JSON.
func (h *ReportHandler) Summary(c *gin.Context) {
	req, ok := bindReport(c)
	if !ok {
		return
	}

	agg, hasData := h.reportService.Summarize(req.Orders, req.UnpaidOrders)
	response.OK(c, "Report summary computed", response.SummaryResponse{HasData: hasData, Aggregation: agg})
}

// Export returns one row per paid order as CSV, or as an XLSX workbook when
// format=xlsx.
func (h *ReportHandler) Export(c *gin.Context) {
	req, ok := bindReport(c)
	if !ok {
		return
	}

	var (
		buf         bytes.Buffer
		err         error
		contentType = "text/csv; charset=utf-8"
		filename    = "laporan-transaksi.csv"
	)
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		err = h.reportService.ExportCSV(&buf, req.Orders)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "laporan-transaksi.xlsx"
		err = h.reportService.ExportXLSX(&buf, req.Orders)
	default:
		response.BadRequest(c, "Invalid export format. Use 'csv' or 'xlsx'")
		return
	}
	if err != nil {
		_ = c.Error(err)
		response.Error(c, apperror.ErrInternalServer)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ReportHandler) historyRange(c *gin.Context) (from, to *time.Time, ok bool) {
	var q request.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return nil, nil, false
	}

	from, err := parseDateBound(q.From, h.loc, false)
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	to, err = parseDateBound(q.To, h.loc, true)
	if err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	return from, to, true
}

// History returns the totals of the stored order history.
func (h *ReportHandler) History(c *gin.Context) {
	from, to, ok := h.historyRange(c)
	if !ok {
		return
	}

	paid, unpaid, err := h.reportService.History(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	agg, hasData := h.reportService.Summarize(paid, unpaid)
	response.OK(c, "Order history summary computed", response.SummaryResponse{HasData: hasData, Aggregation: agg})
}

// PrintHistory prints a report of the stored order history.
func (h *ReportHandler) PrintHistory(c *gin.Context) {
	from, to, ok := h.historyRange(c)
	if !ok {
		return
	}

	res, err := h.reportService.PrintHistory(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, printFailure(err))
		return
	}
	printed(c, res)
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/kasir-receipt/internal/application/service"
	"github.com/sangkips/kasir-receipt/internal/presentation/http/dto/request"
	"github.com/sangkips/kasir-receipt/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a test page to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	res, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		response.Error(c, printFailure(err))
		return
	}
	response.OK(c, "Test page sent to printer", response.NewPrintResponse(res))
}

// PrintReceipt prints a single-transaction receipt.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	info := req.ReceiptInfo
	if info.Cashier == "" {
		info.Cashier = GetCashierName(c)
	}

	res, err := h.printerService.PrintReceipt(c.Request.Context(), info)
	if err != nil {
		response.Error(c, printFailure(err))
		return
	}

	c.Header("X-Print-Job-ID", res.JobID)
	if !res.Printed {
		response.OK(c, "Receipt not printed: no payment method selected", response.NewPrintResponse(res))
		return
	}
	response.OK(c, "Receipt sent to printer", response.NewPrintResponse(res))
}

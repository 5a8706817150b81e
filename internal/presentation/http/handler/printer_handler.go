package handler

import (
	"fmt"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/application/service"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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
	if err := h.printerService.TestPrint(); err != nil {
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", nil)
}

// PrintReceipt prints a stored receipt on the configured printer.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.printerService.PrintReceipt(c.Request.Context(), *userID, id)
	if err != nil {
		// The receipt rendered but the hardware failed, hand it back with a warning
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}

// ExportReceipt returns the rendered receipt document as a download.
func (h *PrinterHandler) ExportReceipt(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	data, receipt, err := h.printerService.RenderReceipt(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("%s.bin", receipt.ReceiptNo)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/octet-stream", data)
}

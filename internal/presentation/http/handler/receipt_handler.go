package handler

import (
	"time"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/application/service"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/enum"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/presentation/http/dto/request"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/presentation/http/dto/response"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/pagination"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/stats"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create handles recording a new sale
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.ReceiptItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := enum.ParseProductType(item.Product)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		items = append(items, service.ReceiptItemInput{
			Product:   product,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), &service.CreateReceiptInput{
		UserID:       *userID,
		CustomerName: req.CustomerName,
		Notes:        req.Notes,
		Items:        items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt recorded successfully", receipt)
}

// List handles browsing receipt history with filters
func (h *ReceiptHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ListReceiptsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := stats.FilterSpec{
		Query:     req.Query,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
	}
	if req.StartDate != "" {
		if startDate, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			filter.StartDate = &startDate
		}
	}
	if req.EndDate != "" {
		if endDate, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			filter.EndDate = &endDate
		}
	}

	params := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	result, err := h.receiptService.ListReceipts(c.Request.Context(), *userID, filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Get handles fetching a single receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
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

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Delete handles removing a single receipt
func (h *ReceiptHandler) Delete(c *gin.Context) {
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

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt deleted successfully", nil)
}

// DeleteAll handles clearing the user's entire receipt history
func (h *ReceiptHandler) DeleteAll(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	deleted, err := h.receiptService.DeleteAllReceipts(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt history cleared", gin.H{
		"deleted": deleted,
	})
}

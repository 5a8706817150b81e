package request

// ReceiptItemRequest represents one line item on a new receipt
type ReceiptItemRequest struct {
	Product   string  `json:"product" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
}

// CreateReceiptRequest represents a create receipt request
type CreateReceiptRequest struct {
	CustomerName string               `json:"customer_name" binding:"required"`
	Notes        string               `json:"notes"`
	Items        []ReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ListReceiptsRequest carries the history browse filters as query params
type ListReceiptsRequest struct {
	Page      int      `form:"page"`
	PerPage   int      `form:"per_page"`
	Query     string   `form:"q"`
	StartDate string   `form:"start_date"` // YYYY-MM-DD
	EndDate   string   `form:"end_date"`   // YYYY-MM-DD
	MinAmount *float64 `form:"min_amount"`
	MaxAmount *float64 `form:"max_amount"`
}

package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/entity"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/enum"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/repository"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/apperror"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/pagination"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/stats"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/utils"
	"github.com/google/uuid"
)

// receiptAccessors adapts entity.Receipt to the stats helpers.
// Totals are stored in kobo and compared as naira.
var receiptAccessors = stats.Accessors[entity.Receipt]{
	CustomerName: func(r entity.Receipt) string { return r.CustomerName },
	Total:        func(r entity.Receipt) float64 { return float64(r.TotalAmount()) / 100 },
	CreatedAt: func(r entity.Receipt) (time.Time, bool) {
		if r.CreatedAt.IsZero() {
			return time.Time{}, false
		}
		return r.CreatedAt, true
	},
}

// ReceiptService handles receipt-related operations
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(receiptRepo repository.ReceiptRepository) *ReceiptService {
	return &ReceiptService{receiptRepo: receiptRepo}
}

// ReceiptItemInput represents an item on a new receipt
type ReceiptItemInput struct {
	Product   enum.ProductType
	Quantity  int
	UnitPrice float64
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	UserID       uuid.UUID
	CustomerName string
	Notes        string
	Items        []ReceiptItemInput
}

// CreateReceipt validates and records a new sale
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	if err := validateReceiptInput(input); err != nil {
		return nil, err
	}

	var total int64
	items := make([]entity.ReceiptItem, 0, len(input.Items))
	for _, item := range input.Items {
		// Round, don't truncate: prices like 2.01 sit just below their
		// true value in binary and would otherwise store a kobo short
		unitPriceKobo := int64(math.Round(item.UnitPrice * 100))
		itemTotal := unitPriceKobo * int64(item.Quantity)
		total += itemTotal

		items = append(items, entity.ReceiptItem{
			Product:   item.Product,
			Quantity:  item.Quantity,
			UnitPrice: unitPriceKobo,
			Total:     itemTotal,
		})
	}

	receipt := &entity.Receipt{
		UserID:       input.UserID,
		ReceiptNo:    utils.GenerateReceiptNo(),
		CustomerName: strings.TrimSpace(input.CustomerName),
		Notes:        input.Notes,
		Total:        total,
		Items:        items,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	return s.receiptRepo.GetWithItems(ctx, receipt.ID)
}

// validateReceiptInput rejects unsaveable receipts before anything is persisted
func validateReceiptInput(input *CreateReceiptInput) error {
	var fieldErrors []apperror.FieldError

	if strings.TrimSpace(input.CustomerName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "customer_name",
			Message: "Customer name is required",
		})
	}

	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "items",
			Message: "At least one item is required",
		})
	}

	for i, item := range input.Items {
		if !item.Product.Valid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].product", i),
				Message: "Unknown product type",
			})
		}
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "Quantity must be greater than zero",
			})
		}
		if item.UnitPrice <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].unit_price", i),
				Message: "Unit price must be greater than zero",
			})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// GetReceipt retrieves a receipt by ID, scoped to its owner
func (s *ReceiptService) GetReceipt(ctx context.Context, userID, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	if receipt.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return receipt, nil
}

// ListReceipts returns one page of the user's receipt history. Text,
// date and amount filters all apply before the page is cut, so the
// pagination metadata reflects the filtered count.
func (s *ReceiptService) ListReceipts(ctx context.Context, userID uuid.UUID, filter stats.FilterSpec, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	receipts, err := s.receiptRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := stats.Apply(receipts, filter, receiptAccessors)
	return pagination.Paginate(filtered, params), nil
}

// DeleteReceipt removes a single receipt owned by the user
func (s *ReceiptService) DeleteReceipt(ctx context.Context, userID, id uuid.UUID) error {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Receipt")
	}
	if receipt.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.receiptRepo.Delete(ctx, userID, id)
}

// DeleteAllReceipts clears the user's entire history and reports how
// many receipts were removed
func (s *ReceiptService) DeleteAllReceipts(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.receiptRepo.DeleteByOwner(ctx, userID)
}

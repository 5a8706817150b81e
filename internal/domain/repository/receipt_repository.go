package repository

import (
	"context"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/entity"
	"github.com/google/uuid"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// ListByOwner returns every receipt belonging to the user, items
	// preloaded, newest first. Filtering and paging happen in memory
	// above this layer.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]entity.Receipt, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByOwner(ctx context.Context, userID uuid.UUID) (int64, error)
}

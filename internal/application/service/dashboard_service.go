package service

import (
	"context"
	"time"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/entity"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/repository"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/stats"
	"github.com/google/uuid"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	receiptRepo repository.ReceiptRepository
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(receiptRepo repository.ReceiptRepository) *DashboardService {
	return &DashboardService{
		receiptRepo: receiptRepo,
		now:         time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalSales     stats.Stat       `json:"total_sales"`
	TotalReceipts  stats.Stat       `json:"total_receipts"`
	AverageOrder   stats.Stat       `json:"average_order"`
	RecentReceipts []entity.Receipt `json:"recent_receipts"`
}

// GetDashboardStats returns the user's all-time aggregates, day-over-day
// trends and most recent receipts
func (s *DashboardService) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	receipts, err := s.receiptRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := stats.Summarize(receipts, s.now(), receiptAccessors)

	return &DashboardStats{
		TotalSales:     summary.TotalSales,
		TotalReceipts:  summary.TotalReceipts,
		AverageOrder:   summary.AverageOrder,
		RecentReceipts: summary.Recent,
	}, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/entity"
	domainRepo "github.com/Preshstiks/ugoreceiptgenerator/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		Scopes(OwnedBy(userID)).
		Order("created_at DESC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.ReceiptItem{}, "receipt_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Scopes(OwnedBy(userID)).Delete(&entity.Receipt{}, "id = ?", id).Error
	})
}

func (r *receiptRepository) DeleteByOwner(ctx context.Context, userID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("receipt_id IN (?)", tx.Model(&entity.Receipt{}).Select("id").Scopes(OwnedBy(userID))).
			Delete(&entity.ReceiptItem{}).Error; err != nil {
			return err
		}

		result := tx.Scopes(OwnedBy(userID)).Delete(&entity.Receipt{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

func (r *receiptRepository) CountByOwner(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Scopes(OwnedBy(userID)).
		Count(&count).Error
	return count, err
}

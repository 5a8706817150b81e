package entity

import (
	"encoding/json"
	"time"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Receipt represents a recorded water sale
type Receipt struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ReceiptNo    string         `gorm:"size:100;unique;not null" json:"receipt_no"`
	CustomerName string         `gorm:"size:255;not null" json:"customer_name"`
	Notes        string         `gorm:"size:1000" json:"notes,omitempty"`
	Total        int64          `gorm:"default:0" json:"-"` // Stored in kobo, excluded from JSON
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User  User          `gorm:"foreignKey:UserID" json:"-"`
	Items []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert kobo to decimal for API responses
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(r),
		Total: float64(r.TotalAmount()) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// GetTotalDecimal returns the total as a decimal
func (r *Receipt) GetTotalDecimal() float64 {
	return float64(r.TotalAmount()) / 100
}

// Subtotal recomputes the receipt total from its line items, in kobo.
// There is no tax, so the grand total equals the subtotal.
func (r *Receipt) Subtotal() int64 {
	var sum int64
	for _, item := range r.Items {
		sum += item.Total
	}
	return sum
}

// TotalAmount returns the receipt total in kobo. Displayed totals are
// always recomputed from the line items; the stored Total is a
// creation-time snapshot, only trusted when the items are not loaded.
func (r *Receipt) TotalAmount() int64 {
	if len(r.Items) > 0 {
		return r.Subtotal()
	}
	return r.Total
}

// ReceiptItem represents a line item on a receipt
type ReceiptItem struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID        `gorm:"type:uuid;not null;index" json:"receipt_id"`
	Product   enum.ProductType `gorm:"default:0" json:"product"`
	Quantity  int              `gorm:"not null" json:"quantity"`
	UnitPrice int64            `gorm:"not null" json:"-"` // Stored in kobo, excluded from JSON
	Total     int64            `gorm:"not null" json:"-"` // Stored in kobo, excluded from JSON
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Receipt Receipt `gorm:"foreignKey:ReceiptID" json:"-"`
}

// MarshalJSON custom marshaler to convert kobo to decimal for API responses
func (ri ReceiptItem) MarshalJSON() ([]byte, error) {
	type Alias ReceiptItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(ri),
		UnitPrice: float64(ri.UnitPrice) / 100,
		Total:     float64(ri.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new receipt item
func (ri *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}

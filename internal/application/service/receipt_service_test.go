package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/entity"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/enum"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/apperror"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/pagination"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/stats"
)

// fakeReceiptRepo is an in-memory ReceiptRepository for service tests.
type fakeReceiptRepo struct {
	receipts []entity.Receipt
}

func (f *fakeReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	for i := range receipt.Items {
		if receipt.Items[i].ID == uuid.Nil {
			receipt.Items[i].ID = uuid.New()
		}
		receipt.Items[i].ReceiptID = receipt.ID
	}
	f.receipts = append(f.receipts, *receipt)
	return nil
}

func (f *fakeReceiptRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			r := f.receipts[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeReceiptRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeReceiptRepo) ListByOwner(_ context.Context, userID uuid.UUID) ([]entity.Receipt, error) {
	var out []entity.Receipt
	for _, r := range f.receipts {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReceiptRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, r := range f.receipts {
		if r.ID == id && r.UserID == userID {
			f.receipts = append(f.receipts[:i], f.receipts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeReceiptRepo) DeleteByOwner(_ context.Context, userID uuid.UUID) (int64, error) {
	var kept []entity.Receipt
	var deleted int64
	for _, r := range f.receipts {
		if r.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	f.receipts = kept
	return deleted, nil
}

func (f *fakeReceiptRepo) CountByOwner(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, r := range f.receipts {
		if r.UserID == userID {
			count++
		}
	}
	return count, nil
}

func TestCreateReceipt(t *testing.T) {
	repo := &fakeReceiptRepo{}
	svc := NewReceiptService(repo)
	userID := uuid.New()

	receipt, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		UserID:       userID,
		CustomerName: "  Ada Obi  ",
		Items: []ReceiptItemInput{
			{Product: enum.ProductTypeBottled, Quantity: 3, UnitPrice: 500},
			{Product: enum.ProductTypeSachet, Quantity: 2, UnitPrice: 250.50},
		},
	})
	if err != nil {
		t.Fatalf("CreateReceipt() error = %v", err)
	}

	if receipt.CustomerName != "Ada Obi" {
		t.Errorf("CustomerName = %q, want trimmed %q", receipt.CustomerName, "Ada Obi")
	}
	if receipt.ReceiptNo == "" {
		t.Error("ReceiptNo was not generated")
	}
	// 3*50000 + 2*25050 kobo
	if want := int64(200100); receipt.Total != want {
		t.Errorf("Total = %d kobo, want %d", receipt.Total, want)
	}
	if len(receipt.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(receipt.Items))
	}
	if receipt.Items[1].UnitPrice != 25050 {
		t.Errorf("Items[1].UnitPrice = %d kobo, want 25050", receipt.Items[1].UnitPrice)
	}
	if receipt.Subtotal() != receipt.Total {
		t.Errorf("Subtotal() = %d, want Total %d", receipt.Subtotal(), receipt.Total)
	}
}

func TestCreateReceiptRoundsKobo(t *testing.T) {
	// Prices like 2.01 sit just below their true value in float64;
	// truncation would store them a kobo short.
	tests := []struct {
		price    float64
		quantity int
		wantKobo int64
	}{
		{2.01, 1, 201},
		{0.29, 1, 29},
		{1.15, 5, 115},
		{19.99, 2, 1999},
	}

	for _, tt := range tests {
		svc := NewReceiptService(&fakeReceiptRepo{})
		receipt, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
			UserID:       uuid.New(),
			CustomerName: "Ada",
			Items: []ReceiptItemInput{
				{Product: enum.ProductTypeBottled, Quantity: tt.quantity, UnitPrice: tt.price},
			},
		})
		if err != nil {
			t.Fatalf("CreateReceipt(%v) error = %v", tt.price, err)
		}

		item := receipt.Items[0]
		if item.UnitPrice != tt.wantKobo {
			t.Errorf("UnitPrice for %v = %d kobo, want %d", tt.price, item.UnitPrice, tt.wantKobo)
		}
		if want := tt.wantKobo * int64(tt.quantity); item.Total != want {
			t.Errorf("line total for %d x %v = %d kobo, want %d", tt.quantity, tt.price, item.Total, want)
		}
	}
}

func TestCreateReceiptValidation(t *testing.T) {
	tests := []struct {
		name       string
		input      *CreateReceiptInput
		wantFields []string
	}{
		{
			name:       "missing customer name",
			input:      &CreateReceiptInput{CustomerName: "   ", Items: []ReceiptItemInput{{Product: enum.ProductTypeBottled, Quantity: 1, UnitPrice: 100}}},
			wantFields: []string{"customer_name"},
		},
		{
			name:       "no items",
			input:      &CreateReceiptInput{CustomerName: "Ada"},
			wantFields: []string{"items"},
		},
		{
			name: "zero quantity and price",
			input: &CreateReceiptInput{CustomerName: "Ada", Items: []ReceiptItemInput{
				{Product: enum.ProductTypeSachet, Quantity: 0, UnitPrice: 0},
			}},
			wantFields: []string{"items[0].quantity", "items[0].unit_price"},
		},
		{
			name: "unknown product",
			input: &CreateReceiptInput{CustomerName: "Ada", Items: []ReceiptItemInput{
				{Product: enum.ProductType(9), Quantity: 1, UnitPrice: 100},
			}},
			wantFields: []string{"items[0].product"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewReceiptService(&fakeReceiptRepo{})
			_, err := svc.CreateReceipt(context.Background(), tt.input)
			if err == nil {
				t.Fatal("CreateReceipt() error = nil, want validation error")
			}

			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("error = %T, want *apperror.AppError", err)
			}
			got := make(map[string]bool, len(appErr.Errors))
			for _, fe := range appErr.Errors {
				got[fe.Field] = true
			}
			for _, field := range tt.wantFields {
				if !got[field] {
					t.Errorf("missing field error for %q in %v", field, appErr.Errors)
				}
			}
		})
	}
}

func TestGetReceiptOwnership(t *testing.T) {
	repo := &fakeReceiptRepo{}
	svc := NewReceiptService(repo)
	owner := uuid.New()
	stranger := uuid.New()

	created, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		UserID:       owner,
		CustomerName: "Ada",
		Items:        []ReceiptItemInput{{Product: enum.ProductTypeBottled, Quantity: 1, UnitPrice: 500}},
	})
	if err != nil {
		t.Fatalf("CreateReceipt() error = %v", err)
	}

	if _, err := svc.GetReceipt(context.Background(), owner, created.ID); err != nil {
		t.Errorf("GetReceipt() as owner error = %v", err)
	}

	if _, err := svc.GetReceipt(context.Background(), stranger, created.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("GetReceipt() as stranger error = %v, want ErrForbidden", err)
	}

	_, err = svc.GetReceipt(context.Background(), owner, uuid.New())
	appErr := apperror.GetAppError(err)
	if appErr.Code != 404 {
		t.Errorf("GetReceipt() unknown id code = %d, want 404", appErr.Code)
	}
}

func TestListReceiptsFiltersThenPaginates(t *testing.T) {
	repo := &fakeReceiptRepo{}
	userID := uuid.New()
	now := time.Now()

	for i := 0; i < 15; i++ {
		name := "Ada"
		if i%3 == 0 {
			name = "Bola"
		}
		repo.receipts = append(repo.receipts, entity.Receipt{
			ID:           uuid.New(),
			UserID:       userID,
			CustomerName: name,
			Total:        100000,
			CreatedAt:    now.Add(-time.Duration(i) * time.Hour),
		})
	}

	svc := NewReceiptService(repo)
	result, err := svc.ListReceipts(context.Background(), userID,
		stats.FilterSpec{Query: "ada"},
		&pagination.PaginationParams{Page: 1, PerPage: 10},
	)
	if err != nil {
		t.Fatalf("ListReceipts() error = %v", err)
	}

	// 10 of the 15 are named Ada
	if result.Pagination.Total != 10 {
		t.Errorf("Total = %d, want 10 (filter applies before paging)", result.Pagination.Total)
	}
	for _, r := range result.Items {
		if r.CustomerName != "Ada" {
			t.Errorf("unexpected customer %q in filtered page", r.CustomerName)
		}
	}
}

func TestDeleteReceipt(t *testing.T) {
	repo := &fakeReceiptRepo{}
	svc := NewReceiptService(repo)
	owner := uuid.New()

	created, err := svc.CreateReceipt(context.Background(), &CreateReceiptInput{
		UserID:       owner,
		CustomerName: "Ada",
		Items:        []ReceiptItemInput{{Product: enum.ProductTypeSachet, Quantity: 1, UnitPrice: 200}},
	})
	if err != nil {
		t.Fatalf("CreateReceipt() error = %v", err)
	}

	if err := svc.DeleteReceipt(context.Background(), uuid.New(), created.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("DeleteReceipt() as stranger error = %v, want ErrForbidden", err)
	}

	if err := svc.DeleteReceipt(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("DeleteReceipt() error = %v", err)
	}

	count, _ := repo.CountByOwner(context.Background(), owner)
	if count != 0 {
		t.Errorf("CountByOwner = %d after delete, want 0", count)
	}
}

func TestDeleteAllReceipts(t *testing.T) {
	repo := &fakeReceiptRepo{}
	userID := uuid.New()
	other := uuid.New()

	for i := 0; i < 4; i++ {
		repo.receipts = append(repo.receipts, entity.Receipt{ID: uuid.New(), UserID: userID})
	}
	repo.receipts = append(repo.receipts, entity.Receipt{ID: uuid.New(), UserID: other})

	svc := NewReceiptService(repo)
	deleted, err := svc.DeleteAllReceipts(context.Background(), userID)
	if err != nil {
		t.Fatalf("DeleteAllReceipts() error = %v", err)
	}
	if deleted != 4 {
		t.Errorf("deleted = %d, want 4", deleted)
	}

	count, _ := repo.CountByOwner(context.Background(), other)
	if count != 1 {
		t.Errorf("other user lost receipts: count = %d, want 1", count)
	}
}

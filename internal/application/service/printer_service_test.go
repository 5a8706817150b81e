package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/entity"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/enum"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/apperror"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/printer"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if f.users == nil {
		f.users = map[uuid.UUID]*entity.User{}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func sampleReceipt() *entity.Receipt {
	return &entity.Receipt{
		ID:           uuid.New(),
		ReceiptNo:    "RCP-A1B2C3D4",
		CustomerName: "Ada Obi",
		Total:        170000,
		CreatedAt:    time.Date(2026, time.June, 3, 16, 5, 9, 0, time.UTC),
		Items: []entity.ReceiptItem{
			{Product: enum.ProductTypeBottled, Quantity: 2, UnitPrice: 60000, Total: 120000},
			{Product: enum.ProductTypeSachet, Quantity: 1, UnitPrice: 50000, Total: 50000},
		},
	}
}

func TestFormatReceipt(t *testing.T) {
	businessName := "Ugo Pure Water"
	phone := "0801 234 5678"
	owner := &entity.User{
		FirstName:     "Ugo",
		BusinessName:  &businessName,
		BusinessPhone: &phone,
	}

	data := FormatReceipt(sampleReceipt(), owner)

	for _, want := range []string{
		"Ugo Pure Water",
		"0801 234 5678",
		"RCP-A1B2C3D4",
		"June 3, 2026",
		"4:05:09 PM",
		"Ada Obi",
		"2x Bottled Water",
		"2 packs @ NGN 600.00",
		"1x Satchet Water",
		"1 bag @ NGN 500.00",
		"NGN 1700.00",
		"Thank you for your patronage!",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("rendered receipt missing %q", want)
		}
	}

	// Must start with printer init and end with a partial cut.
	if !bytes.HasPrefix(data, []byte{0x1B, '@'}) {
		t.Error("document does not start with ESC @ init")
	}
	if !bytes.HasSuffix(data, []byte{0x1D, 'V', 0x01}) {
		t.Error("document does not end with partial cut")
	}
}

func TestFormatReceiptRecomputesTotal(t *testing.T) {
	r := sampleReceipt()
	r.Total = 1 // stale snapshot, items sum to 170000 kobo

	data := FormatReceipt(r, nil)

	if !bytes.Contains(data, []byte("NGN 1700.00")) {
		t.Error("printed TOTAL not recomputed from line items")
	}
	if bytes.Contains(data, []byte("NGN 0.01")) {
		t.Error("printed TOTAL used the stored snapshot")
	}
}

func TestFormatReceiptDefaults(t *testing.T) {
	r := sampleReceipt()
	r.Notes = "Deliver before noon"

	data := FormatReceipt(r, nil)

	if !bytes.Contains(data, []byte("Water Receipts")) {
		t.Error("missing fallback business name")
	}
	if !bytes.Contains(data, []byte("Deliver before noon")) {
		t.Error("missing notes section")
	}
}

func TestRenderReceiptOwnership(t *testing.T) {
	owner := uuid.New()
	r := sampleReceipt()
	r.UserID = owner

	receiptRepo := &fakeReceiptRepo{receipts: []entity.Receipt{*r}}
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{
		owner: {ID: owner, FirstName: "Ugo"},
	}}

	svc := NewPrinterService(printer.NewNullPrinter(), receiptRepo, userRepo, "none")

	data, got, err := svc.RenderReceipt(context.Background(), owner, r.ID)
	if err != nil {
		t.Fatalf("RenderReceipt() error = %v", err)
	}
	if got.ReceiptNo != r.ReceiptNo {
		t.Errorf("ReceiptNo = %q, want %q", got.ReceiptNo, r.ReceiptNo)
	}
	if len(data) == 0 {
		t.Error("RenderReceipt() returned no bytes")
	}

	if _, _, err := svc.RenderReceipt(context.Background(), uuid.New(), r.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("RenderReceipt() as stranger error = %v, want ErrForbidden", err)
	}
}

func TestGetStatus(t *testing.T) {
	tests := []struct {
		printerType    string
		wantConfigured bool
	}{
		{"none", false},
		{"", false},
		{"usb", true},
		{"network", true},
	}

	for _, tt := range tests {
		svc := NewPrinterService(printer.NewNullPrinter(), &fakeReceiptRepo{}, &fakeUserRepo{}, tt.printerType)
		if got := svc.GetStatus(); got.Configured != tt.wantConfigured {
			t.Errorf("GetStatus().Configured = %v for type %q, want %v", got.Configured, tt.printerType, tt.wantConfigured)
		}
	}
}

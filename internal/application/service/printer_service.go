package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/entity"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/enum"
	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/repository"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/apperror"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/printer"
	"github.com/Preshstiks/ugoreceiptgenerator/pkg/stats"
	"github.com/google/uuid"
)

// receiptPaperWidth is the character width of 80mm thermal paper.
const receiptPaperWidth = 48

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	receiptRepo repository.ReceiptRepository
	userRepo    repository.UserRepository
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	receiptRepo repository.ReceiptRepository,
	userRepo repository.UserRepository,
	printerType string,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		receiptRepo: receiptRepo,
		userRepo:    userRepo,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
func (s *PrinterService) TestPrint() error {
	now := time.Now()
	receipt := &entity.Receipt{
		ReceiptNo:    "TEST-001",
		CustomerName: "Printer Test",
		CreatedAt:    now,
		Total:        50000,
		Items: []entity.ReceiptItem{
			{Product: enum.ProductTypeBottled, Quantity: 1, UnitPrice: 30000, Total: 30000},
			{Product: enum.ProductTypeSachet, Quantity: 2, UnitPrice: 10000, Total: 20000},
		},
	}

	data := FormatReceipt(receipt, &entity.User{FirstName: "Printer", LastName: "Test"})
	if err := s.printer.Print(data); err != nil {
		return fmt.Errorf("test print failed: %w", err)
	}
	return nil
}

// RenderReceipt fetches a receipt and renders it as an ESC/POS document
// without printing. Handlers use this for the download/export endpoint.
func (s *PrinterService) RenderReceipt(ctx context.Context, userID, receiptID uuid.UUID) ([]byte, *entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetWithItems(ctx, receiptID)
	if err != nil {
		return nil, nil, err
	}
	if receipt == nil {
		return nil, nil, apperror.NewNotFoundError("Receipt")
	}
	if receipt.UserID != userID {
		return nil, nil, apperror.ErrForbidden
	}

	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return FormatReceipt(receipt, owner), receipt, nil
}

// PrintReceipt fetches a receipt (with items) and prints it.
func (s *PrinterService) PrintReceipt(ctx context.Context, userID, receiptID uuid.UUID) (*entity.Receipt, error) {
	data, receipt, err := s.RenderReceipt(ctx, userID, receiptID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (receipt %s): %v", receiptID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// formatNaira renders a kobo amount as a naira money string.
// Thermal printers choke on the naira sign, so "NGN" is used instead.
func formatNaira(kobo int64) string {
	return fmt.Sprintf("NGN %.2f", float64(kobo)/100)
}

// FormatReceipt converts a Receipt into ESC/POS bytes for 80mm paper.
func FormatReceipt(r *entity.Receipt, owner *entity.User) []byte {
	doc := printer.NewDocument(receiptPaperWidth)

	businessName := "Water Receipts"
	if owner != nil && owner.BusinessName != nil && *owner.BusinessName != "" {
		businessName = *owner.BusinessName
	}

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(businessName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if owner != nil {
		if owner.BusinessAddress != nil && *owner.BusinessAddress != "" {
			doc.Text(*owner.BusinessAddress)
		}
		if owner.BusinessPhone != nil && *owner.BusinessPhone != "" {
			doc.Text(*owner.BusinessPhone)
		}
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	// Receipt info, dated the way the app displays history entries
	doc.KeyValue("Receipt:", r.ReceiptNo).
		KeyValue("Date:", r.CreatedAt.Format(stats.DateLayout)).
		KeyValue("Time:", r.CreatedAt.Format(stats.TimeLayout)).
		KeyValue("Customer:", r.CustomerName)

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Product.Label(), formatNaira(item.Total))
		doc.TextF("  %d %s @ %s", item.Quantity, item.Product.UnitNoun(item.Quantity), formatNaira(item.UnitPrice))
	}

	doc.Separator('-')

	// No tax is charged, the grand total is the item sum
	doc.KeyValue("Subtotal:", formatNaira(r.Subtotal()))
	doc.SetBold(true).
		KeyValue("TOTAL:", formatNaira(r.TotalAmount())).
		SetBold(false)

	if r.Notes != "" {
		doc.Separator('-')
		doc.Text(r.Notes)
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your patronage!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

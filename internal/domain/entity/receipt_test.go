package entity

import (
	"encoding/json"
	"testing"

	"github.com/Preshstiks/ugoreceiptgenerator/internal/domain/enum"
)

func TestReceiptMarshalJSON(t *testing.T) {
	r := Receipt{
		ReceiptNo:    "RCP-A1B2C3D4",
		CustomerName: "Ada Obi",
		Total:        170050,
		Items: []ReceiptItem{
			{Product: enum.ProductTypeBottled, Quantity: 2, UnitPrice: 60000, Total: 120000},
			{Product: enum.ProductTypeSachet, Quantity: 1, UnitPrice: 50050, Total: 50050},
		},
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got := out["total"].(float64); got != 1700.50 {
		t.Errorf("total = %v, want 1700.50 naira", got)
	}

	items := out["items"].([]interface{})
	item := items[0].(map[string]interface{})
	if got := item["unit_price"].(float64); got != 600 {
		t.Errorf("items[0].unit_price = %v, want 600", got)
	}
	if got := item["total"].(float64); got != 1200 {
		t.Errorf("items[0].total = %v, want 1200", got)
	}
	if got := item["product"].(string); got != "bottled" {
		t.Errorf("items[0].product = %v, want bottled", got)
	}
}

func TestReceiptSubtotal(t *testing.T) {
	r := Receipt{
		Total: 170000,
		Items: []ReceiptItem{
			{Total: 120000},
			{Total: 50000},
		},
	}

	if got := r.Subtotal(); got != 170000 {
		t.Errorf("Subtotal() = %d, want 170000", got)
	}
	// No tax: subtotal and grand total agree
	if r.Subtotal() != r.Total {
		t.Errorf("Subtotal() = %d, Total = %d, want equal", r.Subtotal(), r.Total)
	}

	var empty Receipt
	if got := empty.Subtotal(); got != 0 {
		t.Errorf("Subtotal() on empty receipt = %d, want 0", got)
	}
}

func TestGetTotalDecimal(t *testing.T) {
	r := Receipt{Total: 12345}
	if got := r.GetTotalDecimal(); got != 123.45 {
		t.Errorf("GetTotalDecimal() = %v, want 123.45", got)
	}
}

func TestTotalAmountRecomputesFromItems(t *testing.T) {
	// A stale snapshot must never win over the line items
	r := Receipt{
		Total: 99999,
		Items: []ReceiptItem{
			{Total: 120000},
			{Total: 50000},
		},
	}

	if got := r.TotalAmount(); got != 170000 {
		t.Errorf("TotalAmount() = %d, want 170000 recomputed from items", got)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got := out["total"].(float64); got != 1700 {
		t.Errorf("marshaled total = %v, want 1700 from items, not the snapshot", got)
	}

	// Without loaded items the snapshot is all there is
	bare := Receipt{Total: 12300}
	if got := bare.TotalAmount(); got != 12300 {
		t.Errorf("TotalAmount() without items = %d, want stored 12300", got)
	}
}

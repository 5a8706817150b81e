package enum

import (
	"encoding/json"
	"testing"
)

func TestProductTypeLabels(t *testing.T) {
	tests := []struct {
		p         ProductType
		str       string
		label     string
		unitOne   string
		unitMany  string
	}{
		{ProductTypeBottled, "bottled", "Bottled Water", "pack", "packs"},
		{ProductTypeSachet, "satchet", "Satchet Water", "bag", "bags"},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if got := tt.p.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.p.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.p.UnitNoun(1); got != tt.unitOne {
				t.Errorf("UnitNoun(1) = %q, want %q", got, tt.unitOne)
			}
			if got := tt.p.UnitNoun(4); got != tt.unitMany {
				t.Errorf("UnitNoun(4) = %q, want %q", got, tt.unitMany)
			}
		})
	}
}

func TestProductTypeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    ProductType
		wantErr bool
	}{
		{"bottled", `"bottled"`, ProductTypeBottled, false},
		{"stored spelling", `"satchet"`, ProductTypeSachet, false},
		{"corrected spelling", `"sachet"`, ProductTypeSachet, false},
		{"numeric", `1`, ProductTypeSachet, false},
		{"unknown", `"kegs"`, 0, true},
		{"numeric out of range", `9`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p ProductType
			err := json.Unmarshal([]byte(tt.in), &p)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if p != tt.want {
				t.Errorf("got %v, want %v", p, tt.want)
			}
		})
	}
}

func TestProductTypeUnknownValueIsSafe(t *testing.T) {
	// A corrupt row must render a fallback, not panic
	bad := ProductType(9)

	if got := bad.String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
	if got := bad.Label(); got != "Unknown Product" {
		t.Errorf("Label() = %q, want Unknown Product", got)
	}
	if got := bad.UnitNoun(1); got != "unit" {
		t.Errorf("UnitNoun(1) = %q, want unit", got)
	}
	if got := bad.UnitNoun(3); got != "units" {
		t.Errorf("UnitNoun(3) = %q, want units", got)
	}
	if bad.Valid() {
		t.Error("Valid() = true for out-of-range value")
	}
}

func TestProductTypeScan(t *testing.T) {
	var p ProductType
	if err := p.Scan(int64(1)); err != nil {
		t.Fatalf("Scan(1) error = %v", err)
	}
	if p != ProductTypeSachet {
		t.Errorf("Scan(1) = %v, want ProductTypeSachet", p)
	}

	if err := p.Scan(int64(9)); err == nil {
		t.Error("Scan(9) error = nil, want unknown product type error")
	}
}

func TestProductTypeRoundTrip(t *testing.T) {
	data, err := json.Marshal(ProductTypeSachet)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"satchet"` {
		t.Errorf("Marshal = %s, want \"satchet\"", data)
	}

	var p ProductType
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p != ProductTypeSachet {
		t.Errorf("round trip = %v, want ProductTypeSachet", p)
	}
}

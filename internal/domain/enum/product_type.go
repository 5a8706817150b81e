package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ProductType identifies the water product sold on a receipt line
type ProductType int

const (
	ProductTypeBottled ProductType = 0
	ProductTypeSachet  ProductType = 1
)

func (p ProductType) String() string {
	switch p {
	case ProductTypeBottled:
		return "bottled"
	case ProductTypeSachet:
		// "satchet" is the historical spelling carried in stored data
		return "satchet"
	default:
		return "unknown"
	}
}

// Label returns the display name printed on receipts
func (p ProductType) Label() string {
	switch p {
	case ProductTypeBottled:
		return "Bottled Water"
	case ProductTypeSachet:
		return "Satchet Water"
	default:
		return "Unknown Product"
	}
}

// UnitNoun returns the sale unit for a quantity, pluralized
func (p ProductType) UnitNoun(quantity int) string {
	var singular string
	switch p {
	case ProductTypeBottled:
		singular = "pack"
	case ProductTypeSachet:
		singular = "bag"
	default:
		singular = "unit"
	}
	if quantity == 1 {
		return singular
	}
	return singular + "s"
}

// Valid reports whether p is a known product type
func (p ProductType) Valid() bool {
	return p == ProductTypeBottled || p == ProductTypeSachet
}

func (p ProductType) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *ProductType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !ProductType(i).Valid() {
			return fmt.Errorf("unknown product type %d", i)
		}
		*p = ProductType(i)
		return nil
	}
	parsed, err := ParseProductType(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseProductType resolves a wire/product string to a ProductType
func ParseProductType(s string) (ProductType, error) {
	switch s {
	case "bottled":
		return ProductTypeBottled, nil
	case "satchet", "sachet":
		return ProductTypeSachet, nil
	default:
		return 0, fmt.Errorf("unknown product type %q", s)
	}
}

func (p ProductType) Value() (driver.Value, error) {
	return int64(p), nil
}

func (p *ProductType) Scan(value interface{}) error {
	if value == nil {
		*p = ProductTypeBottled
		return nil
	}
	switch v := value.(type) {
	case int64:
		if !ProductType(v).Valid() {
			return fmt.Errorf("unknown product type %d", v)
		}
		*p = ProductType(v)
	case int:
		if !ProductType(v).Valid() {
			return fmt.Errorf("unknown product type %d", v)
		}
		*p = ProductType(v)
	}
	return nil
}

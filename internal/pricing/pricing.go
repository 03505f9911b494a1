// Package pricing implements the read-time markup transform. The transform
// is pure and request-local: stored prices are never modified, every caller
// gets the same displayed price for the same raw input.
package pricing

import (
	"encoding/json"
	"math"
	"strconv"

	"gametopup-rest-api/internal/model"
)

// Rates holds the markup percentages, one per price field. Injected from
// config; the selling and dummy rates are independent.
type Rates struct {
	SellingPercent float64
	DummyPercent   float64
}

// Display maps a raw price to the displayed price:
// round(max(0, coerce(raw)) * (1 + percent/100)).
// Rounding is math.Round, half away from zero, pinned here so the result
// cannot drift between platforms. Non-numeric or missing input coerces to 0.
func Display(raw interface{}, percent float64) int64 {
	base := coerce(raw)
	if base < 0 {
		base = 0
	}
	return int64(math.Round(base * (1 + percent/100)))
}

// Selling applies the selling-price rate.
func (r Rates) Selling(raw interface{}) int64 {
	return Display(raw, r.SellingPercent)
}

// Dummy applies the dummy-price rate.
func (r Rates) Dummy(raw interface{}) int64 {
	return Display(raw, r.DummyPercent)
}

// ApplyToItem returns a copy of the item with sellingPrice and dummyPrice
// replaced by their marked-up values. The input map is not mutated.
func (r Rates) ApplyToItem(item map[string]interface{}) map[string]interface{} {
	out := model.CloneMap(item)
	out[model.FieldSellingPrice] = r.Selling(item[model.FieldSellingPrice])
	out[model.FieldDummyPrice] = r.Dummy(item[model.FieldDummyPrice])
	return out
}

// ApplyToItems transforms every item in an itemId list. Non-map entries are
// passed through untouched.
func (r Rates) ApplyToItems(items []interface{}) []interface{} {
	out := make([]interface{}, len(items))
	for i, it := range items {
		if m, ok := it.(map[string]interface{}); ok {
			out[i] = r.ApplyToItem(m)
		} else {
			out[i] = it
		}
	}
	return out
}

func coerce(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

package pricing

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name    string
		raw     interface{}
		percent float64
		want    int64
	}{
		{"selling markup 6 percent", float64(1000), 6, 1060},
		{"dummy markup 9 percent", float64(1000), 9, 1090},
		{"zero price", float64(0), 6, 0},
		{"nil coerces to zero", nil, 6, 0},
		{"non-numeric string coerces to zero", "abc", 6, 0},
		{"numeric string is parsed", "1000", 6, 1060},
		{"negative clamps to zero", float64(-500), 6, 0},
		{"int input", 1000, 6, 1060},
		{"int64 input", int64(1000), 9, 1090},
		{"rounds half away from zero", float64(25), 10, 28}, // 27.5 -> 28
		{"zero markup is identity", float64(1234), 0, 1234},
		{"bool coerces to zero", true, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Display(tt.raw, tt.percent))
		})
	}
}

func TestRatesApplyToItem(t *testing.T) {
	rates := Rates{SellingPercent: 6, DummyPercent: 9}

	item := map[string]interface{}{
		"itemName":     "86 Diamonds",
		"itemSlug":     "dm-86",
		"sellingPrice": float64(1000),
		"dummyPrice":   float64(1000),
		"region":       "ID", // opaque provider field, must survive untouched
	}

	out := rates.ApplyToItem(item)

	assert.Equal(t, int64(1060), out["sellingPrice"])
	assert.Equal(t, int64(1090), out["dummyPrice"])
	assert.Equal(t, "ID", out["region"])

	// input is never mutated
	assert.Equal(t, float64(1000), item["sellingPrice"])
	assert.Equal(t, float64(1000), item["dummyPrice"])
}

func TestRatesApplyToItemsPassesThroughNonMaps(t *testing.T) {
	rates := Rates{SellingPercent: 6, DummyPercent: 9}

	items := []interface{}{
		map[string]interface{}{"sellingPrice": float64(100), "dummyPrice": float64(100)},
		"not-an-item",
	}

	out := rates.ApplyToItems(items)
	assert.Len(t, out, 2)
	assert.Equal(t, "not-an-item", out[1])
}

func TestDisplayProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("monotonic non-decreasing in raw price", prop.ForAll(
		func(a, b float64, pct float64) bool {
			if a > b {
				a, b = b, a
			}
			return Display(a, pct) <= Display(b, pct)
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(0, 100),
	))

	properties.Property("never below zero for non-negative markup", prop.ForAll(
		func(raw float64, pct float64) bool {
			return Display(raw, pct) >= 0
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(0, 100),
	))

	properties.Property("markup never lowers a non-negative price", prop.ForAll(
		func(raw float64, pct float64) bool {
			if raw < 0 {
				raw = 0
			}
			return Display(raw, pct) >= int64(raw)
		},
		gen.Float64Range(0, 1e6),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

package importer

import (
	"math"
	"strconv"
	"strings"
)

// NormalizePrice converts a raw price cell into a non-negative amount.
// Finite non-negative numeric inputs pass through. String inputs are treated as
// localized amounts: every "." is a thousands separator and the first ","
// is the decimal separator, so "9.327,00" becomes 9327.00. Anything that
// is absent or does not parse to a finite number normalizes to 0; the
// validator drops zero-priced rows later, so malformed prices are absorbed
// rather than reported per row.
func NormalizePrice(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0
		}
		return v
	case int:
		if v < 0 {
			return 0
		}
		return float64(v)
	case int64:
		if v < 0 {
			return 0
		}
		return float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}

package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParseAmount reads a user-entered amount such as "₦200,000" or "5 kg".
// Everything except digits and '.' is dropped; unparsable input yields 0.
// A '-' before the first digit makes the amount negative.
func ParseAmount(s string) float64 {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if first := strings.IndexAny(s, "0123456789."); first > 0 && strings.Contains(s[:first], "-") {
		v = -v
	}
	return v
}

// Density brackets in kg/m³, chosen by declared value per kilogram
const (
	densityLowValue  = 75.0
	densityMidValue  = 150.0
	densityHighValue = 250.0
)

// EstimateDensity maps value-per-kg to an assumed cargo density
func EstimateDensity(valuePerKg float64) float64 {
	switch {
	case valuePerKg < 10000:
		return densityLowValue
	case valuePerKg < 100000:
		return densityMidValue
	default:
		return densityHighValue
	}
}

// CubicVolume estimates an item's volume in m³ from its weight (kg) and declared value.
// Returns "" when either input is missing or not positive.
func CubicVolume(weight, value string) string {
	w := ParseAmount(weight)
	v := ParseAmount(value)
	if w <= 0 || v <= 0 {
		return ""
	}
	return fmt.Sprintf("%.4f", w/EstimateDensity(v/w))
}

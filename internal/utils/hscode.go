package utils

import (
	"sort"
	"strings"
)

// ==========================================
// HS (Harmonized System) codes
// Category keys follow the Nigeria customs tariff groups used on the forms.
// ==========================================

const hsFallbackCategory = "other"

var hsCodesByCategory = map[string]string{
	"electronics":      "8517.62.00",
	"clothing":         "6203.42.00",
	"food":             "2106.90.98",
	"documents":        "4820.10.00",
	"furniture":        "9403.60.00",
	"other":            "9999.99.00",
	"textiles":         "6302.60.00",
	"pharmaceuticals":  "3004.90.00",
	"cosmetics":        "3304.99.00",
	"machinery":        "8479.89.00",
	"auto-parts":       "8708.99.00",
	"books":            "4901.99.00",
	"toys":             "9503.00.90",
	"shoes":            "6403.99.00",
	"bags":             "4202.22.00",
	"jewelry":          "7113.19.00",
	"sports-equipment": "9506.99.00",
}

var hsDescriptions = map[string]string{
	"8517.62.00": "Smartphones and similar electronic communication devices",
	"6203.42.00": "Men's or boys' trousers and shorts of cotton",
	"2106.90.98": "Food preparations not elsewhere specified",
	"4820.10.00": "Registers, account books, notebooks, order books, receipt books",
	"9403.60.00": "Other wooden furniture",
	"9999.99.00": "General/unspecified goods",
	"6302.60.00": "Toilet linen and kitchen linen",
	"3004.90.00": "Medicaments (other than goods of heading 30.02, 30.05 or 30.06)",
	"3304.99.00": "Beauty or make-up preparations",
	"8479.89.00": "Machines and mechanical appliances having individual functions",
	"8708.99.00": "Parts and accessories of motor vehicles",
	"4901.99.00": "Printed books, brochures, leaflets and similar printed matter",
	"9503.00.90": "Other toys",
	"6403.99.00": "Footwear with outer soles of rubber, plastics, leather",
	"4202.22.00": "Handbags with outer surface of plastic sheeting or textile materials",
	"7113.19.00": "Articles of jewelry and parts thereof, of precious metal",
	"9506.99.00": "Articles and equipment for general physical exercise",
}

// HSCode returns the tariff code for a goods category, falling back to "other"
func HSCode(category string) string {
	if code, ok := hsCodesByCategory[strings.ToLower(strings.TrimSpace(category))]; ok {
		return code
	}
	return hsCodesByCategory[hsFallbackCategory]
}

// HSCodeDescription returns the human description for a tariff code
func HSCodeDescription(code string) string {
	if d, ok := hsDescriptions[code]; ok {
		return d
	}
	return "Trade classification code"
}

// HSCategories lists the known categories in alphabetical order
func HSCategories() []string {
	out := make([]string, 0, len(hsCodesByCategory))
	for k := range hsCodesByCategory {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

package utils

import "testing"

func TestCubicVolume(t *testing.T) {
	tests := []struct {
		name   string
		weight string
		value  string
		want   string
	}{
		{"low value per kg", "10", "50000", "0.1333"},     // 5,000/kg -> 75
		{"mid value per kg", "5", "200000", "0.0333"},     // 40,000/kg -> 150
		{"mid bracket ten kg", "10", "500000", "0.0667"},  // 50,000/kg -> 150
		{"high value per kg", "2", "1000000", "0.0080"},   // 500,000/kg -> 250
		{"bracket edge", "1", "10000", "0.0067"},          // exactly 10,000 -> 150
		{"formatted input", "5 kg", "₦200,000", "0.0333"}, // symbols stripped
		{"zero weight", "0", "1000", ""},
		{"empty value", "3", "", ""},
		{"garbage", "abc", "xyz", ""},
		{"negative weight", "-5", "50000", ""},
		{"negative value", "5", "-50000", ""},
		{"negative formatted value", "5 kg", "₦-200,000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CubicVolume(tt.weight, tt.value); got != tt.want {
				t.Errorf("CubicVolume(%q, %q) = %q, want %q", tt.weight, tt.value, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	if got := ParseAmount("₦1,250.50"); got != 1250.5 {
		t.Errorf("ParseAmount = %v", got)
	}
	if got := ParseAmount("1.2.3"); got != 0 {
		t.Errorf("unparsable amount should be 0, got %v", got)
	}
	if got := ParseAmount("-5 kg"); got != -5 {
		t.Errorf("ParseAmount(-5 kg) = %v, want -5", got)
	}
	if got := ParseAmount("₦-1,000"); got != -1000 {
		t.Errorf("ParseAmount(₦-1,000) = %v, want -1000", got)
	}
	if got := ParseAmount("10-20"); got != 1020 {
		t.Errorf("inner dash should be dropped, got %v", got)
	}
}

func TestHSCode(t *testing.T) {
	tests := map[string]string{
		"electronics":       "8517.62.00",
		"  Electronics ":    "8517.62.00",
		"AUTO-PARTS":        "8708.99.00",
		"sports-equipment":  "9506.99.00",
		"spaceships":        "9999.99.00",
		"":                  "9999.99.00",
	}
	for category, want := range tests {
		if got := HSCode(category); got != want {
			t.Errorf("HSCode(%q) = %s, want %s", category, got, want)
		}
	}

	if d := HSCodeDescription("0000.00.00"); d != "Trade classification code" {
		t.Errorf("unknown code description = %q", d)
	}
	if len(HSCategories()) != 17 {
		t.Errorf("HSCategories() = %d entries", len(HSCategories()))
	}
}

package cryanalysis

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	mlPerOz  = 29.5735
	kgPerLb  = 0.453592
	gramsPer = 1000.0
)

// ParseAmountML interpreta cantidades de texto libre: "120ml", "120 ml", "4 oz", "120".
// Sin unidad se asume ml. false si no hay número o la unidad no es de volumen.
func ParseAmountML(s string) (float64, bool) {
	v, unit, ok := splitMeasure(s)
	if !ok {
		return 0, false
	}
	switch unit {
	case "", "ml", "mls", "milliliter", "milliliters":
		return v, true
	case "oz", "ounce", "ounces":
		return v * mlPerOz, true
	case "l", "liter", "liters":
		return v * 1000, true
	default:
		return 0, false
	}
}

// ParseWeightKg: "7.2 kg", "7200g", "15 lb", "7,2". Sin unidad se asume kg.
func ParseWeightKg(s string) (float64, bool) {
	v, unit, ok := splitMeasure(s)
	if !ok || v <= 0 {
		return 0, false
	}
	switch unit {
	case "", "kg", "kgs", "kilo", "kilos":
		return v, true
	case "g", "gr", "grams":
		return v / gramsPer, true
	case "lb", "lbs", "pound", "pounds":
		return v * kgPerLb, true
	default:
		return 0, false
	}
}

func splitMeasure(s string) (float64, string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	i := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != ','
	})
	num, unit := s, ""
	if i >= 0 {
		num, unit = s[:i], strings.TrimSpace(s[i:])
	}
	if num == "" {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", "."), 64)
	if err != nil || v < 0 {
		return 0, "", false
	}
	return v, unit, true
}

func ptrIf(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

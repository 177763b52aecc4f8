package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// RatioWithOneDecimalPlace formata uma razão com uma casa decimal.
// Denominador zero resulta em "0.0", nunca em NaN.
func RatioWithOneDecimalPlace(numerator, denominator float64) string {
	if denominator == 0 {
		return "0.0"
	}

	return fmt.Sprintf("%.1f", numerator/denominator)
}

// ParseDecimal interpreta valores monetários vindos da planilha.
// Aceita vírgula como separador decimal e ponto como separador de milhar.
func ParseDecimal(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

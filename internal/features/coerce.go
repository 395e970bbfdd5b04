package features

import (
	"math"
	"strconv"
	"strings"
)

// CoerceNumeric converts a raw numeric value to an integer. Grouping characters (commas,
// spaces) are dropped from plain digit strings; other strings are read as decimals with
// comma accepted as the decimal separator and truncated toward zero.
func CoerceNumeric(column string, v Value) (int, error) {
	if v.IsBlank() {
		return 0, &MissingValueError{Column: column}
	}

	if v.Kind() == Number {
		n, ok := truncate(v.num)
		if !ok {
			return 0, &InvalidNumericError{Column: column, Value: v.String()}
		}
		return n, nil
	}

	s := strings.TrimSpace(v.text)
	grouped := strings.NewReplacer(",", "", " ", "").Replace(s)
	if isDigits(grouped) {
		if n, err := strconv.Atoi(grouped); err == nil {
			return n, nil
		}
	}

	dec := strings.ReplaceAll(s, ",", ".")
	if decimalPattern.MatchString(dec) {
		if f, err := strconv.ParseFloat(dec, 64); err == nil {
			if n, ok := truncate(f); ok {
				return n, nil
			}
		}
	}

	return 0, &InvalidNumericError{Column: column, Value: v.text}
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int(f), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

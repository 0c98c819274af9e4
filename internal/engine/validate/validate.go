// Package validate parses raw form values into numbers, tolerating both
// Brazilian and dotted decimal input, and checks range bounds.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const msgNotNumeric = "Valor deve ser numérico"

type Bounds struct {
	Min *float64
	Max *float64
}

// Limit is a convenience for building Bounds literals.
func Limit(v float64) *float64 { return &v }

// Number parses raw as a decimal number and checks it against b. The raw
// value may use either comma or dot as the decimal separator; when both
// appear, the last one wins and the other is treated as a thousands
// separator (e.g. "1.234,5" and "1,234.5" both parse as 1234.5).
func Number(raw string, b Bounds) (float64, error) {
	v, err := strconv.ParseFloat(normalize(raw), 64)
	if err != nil {
		return 0, errors.New(msgNotNumeric)
	}
	if b.Min != nil && v < *b.Min {
		return 0, fmt.Errorf("Valor deve ser maior que %g", *b.Min)
	}
	if b.Max != nil && v > *b.Max {
		return 0, fmt.Errorf("Valor deve ser menor que %g", *b.Max)
	}
	return v, nil
}

func normalize(raw string) string {
	s := strings.TrimSpace(raw)
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	return s
}

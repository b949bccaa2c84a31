package unit

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMoney parses a currency-formatted cell value ("₹1,20,00,000",
// "$ 950000.50") into a float. Currency symbols, commas, and
// whitespace are stripped before parsing.
func ParseMoney(raw string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, raw)

	if cleaned == "" {
		return 0, fmt.Errorf("no numeric value in %q", raw)
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return value, nil
}

package arch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var quantityPattern = regexp.MustCompile(`^\s*([0-9]+(?:\.[0-9]+)?)\s*([A-Za-z]*)\s*$`)

var frequencyUnits = map[string]float64{
	"hz":  1,
	"khz": 1e3,
	"mhz": 1e6,
	"ghz": 1e9,
}

var memoryUnits = map[string]float64{
	"b":  1.0 / 1024,
	"kb": 1,
	"mb": 1024,
	"gb": 1024 * 1024,
}

// ParseFrequency converts a processor frequency to Hz. A bare number is MHz.
func ParseFrequency(s string) (float64, error) {
	return parseQuantity(s, "mhz", frequencyUnits)
}

// ParseMemorySize converts a memory size to KB. A bare number is KB.
func ParseMemorySize(s string) (float64, error) {
	return parseQuantity(s, "kb", memoryUnits)
}

func parseQuantity(s, defaultUnit string, units map[string]float64) (float64, error) {
	m := quantityPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	unit := strings.ToLower(m[2])
	if unit == "" {
		unit = defaultUnit
	}
	factor, ok := units[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q in %q", m[2], s)
	}
	return val * factor, nil
}

package utils

import (
	"strconv"
	"strings"
)

// ParseFloatOr parses s as a decimal float. Surrounding whitespace is ignored. An empty or
// unparsable value yields def, and so does hexadecimal notation such as "0x1p4". Parsing never
// consults the process locale.
func ParseFloatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" || isHex(s) {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// SpaceDelimitedStringToFloatSlice splits s on whitespace and parses exactly n components.
// Missing trailing components and components that fail to parse take fill. Extra components
// are ignored.
func SpaceDelimitedStringToFloatSlice(s string, n int, fill float64) []float64 {
	converted := make([]float64, n)
	fields := strings.Fields(s)
	for i := range converted {
		if i < len(fields) {
			converted[i] = ParseFloatOr(fields[i], fill)
		} else {
			converted[i] = fill
		}
	}
	return converted
}

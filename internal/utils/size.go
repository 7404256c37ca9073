package utils

import (
	"strconv"
	"strings"
)

var sizeUnits = []string{"b", "kb", "mb", "gb"}

// FormatPayloadSize renders a byte length for diagnostics, for example 512b, 1.5kb or 12mb.
func FormatPayloadSize(length int) string {
	if length <= 0 {
		return "0b"
	}
	value := float64(length)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(sizeUnits)-1 {
		value /= 1024
		unitIndex++
	}
	precision := 0
	if unitIndex > 0 && value < 10 {
		precision = 1
	}
	formatted := strings.TrimSuffix(strconv.FormatFloat(value, 'f', precision, 64), ".0")
	return formatted + sizeUnits[unitIndex]
}

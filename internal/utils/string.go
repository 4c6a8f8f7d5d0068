// Package utils holds small formatting helpers shared across lexiserve's
// CLI-facing surfaces.
package utils

import "fmt"

// FormatWithCommas formats an integer with comma thousands separators, the
// way the benchmark and debug-client status lines present entry/query
// counts.
func FormatWithCommas(n int) string {
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	str := fmt.Sprintf("%d", n)
	result := make([]byte, 0, len(str)+len(str)/3)
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(char))
	}
	return string(result)
}

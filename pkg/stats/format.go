package stats

import (
	"math"
	"strconv"
)

// FormatCount abbreviates large counters: millions to one decimal with "M+",
// thousands to a whole number with "K+". Smaller values print as-is.
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		v := math.Round(float64(n)/100_000) / 10
		return strconv.FormatFloat(v, 'f', 1, 64) + "M+"
	case n >= 1_000:
		v := math.Round(float64(n) / 1_000)
		return strconv.FormatFloat(v, 'f', 0, 64) + "K+"
	default:
		return strconv.Itoa(n)
	}
}

// FormatVillages renders the villages counter.
func FormatVillages(n int) string {
	return strconv.Itoa(n) + "+"
}

// FormatPercent renders the waste reduction counter.
func FormatPercent(n int) string {
	return strconv.Itoa(n) + "%"
}

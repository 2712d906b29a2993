package finance

import (
	"math"
	"strconv"
	"strings"
)

const rupiahFractionDigits = 3

// FormatRupiah renders v as Indonesian Rupiah, e.g. "Rp 1.250.000,5".
func FormatRupiah(v float64) string {
	return "Rp " + FormatIDNumber(v)
}

// FormatIDNumber groups thousands with dots and uses a comma as the decimal
// separator, keeping at most three fraction digits.
func FormatIDNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}

	negative := v < 0
	raw := strconv.FormatFloat(math.Abs(v), 'f', rupiahFractionDigits, 64)

	intPart, fracPart, _ := strings.Cut(raw, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	var b strings.Builder
	if negative && (intPart != "0" || fracPart != "") {
		b.WriteByte('-')
	}
	b.WriteString(groupThousands(intPart))
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}

	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

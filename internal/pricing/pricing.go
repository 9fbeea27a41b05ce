package pricing

import (
	"strconv"
	"strings"

	"github.com/worklabs/emarket-backend/pkg/db/models"
)

// TotalItems sums the unit count across all basket lines.
func TotalItems(lines []models.BasketLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums quantity * unit price across all basket lines, in minor
// currency units.
func TotalPrice(lines []models.BasketLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity * line.UnitPrice
	}
	return total
}

// Format renders a minor-unit amount with a grouping separator every three
// digits, e.g. 1234567 -> "1,234,567". Negative amounts keep the separators
// on the magnitude: -12345 -> "-12,345". The format is locale-fixed.
func Format(amount int) string {
	digits := strconv.Itoa(amount)

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}

	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Package format renders record values for display using Indonesian
// conventions.
package format

import (
	"fmt"
	"scaffold-rental/internal/validation"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// NPWP renders a 15-digit tax number as XX.XXX.XXX.X-XXX.XXX. Anything else
// is returned unchanged.
func NPWP(value string) string {
	d := validation.Digits(value)
	if len(d) != validation.NPWPLength {
		return value
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "." + d[8:9] + "-" + d[9:12] + "." + d[12:15]
}

// Number groups thousands with dots, e.g. 1.234.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Currency renders whole rupiah, e.g. Rp 1.500.000.
func Currency(amount int64) string {
	if amount < 0 {
		return "-Rp " + strings.TrimPrefix(Number(amount), "-")
	}
	return "Rp " + Number(amount)
}

// Decimal renders a decimal amount as currency, rounded to whole rupiah.
func Decimal(amount decimal.Decimal) string {
	return Currency(amount.Round(0).IntPart())
}

// Date renders YYYY-MM-DD (or RFC3339) as "02 Januari 2025".
func Date(value string) string {
	t, err := validation.ParseDate(value)
	if err != nil {
		return value
	}
	return DateOf(t)
}

func DateOf(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

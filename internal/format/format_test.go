package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNPWP(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain digits", "012345678901234", "01.234.567.8-901.234"},
		{"already formatted", "01.234.567.8-901.234", "01.234.567.8-901.234"},
		{"too short", "0123", "0123"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NPWP(tt.input))
		})
	}
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "Rp 1.500.000", Currency(1500000))
	assert.Equal(t, "Rp 0", Currency(0))
	assert.Equal(t, "Rp 999", Currency(999))
	assert.Equal(t, "-Rp 25.000", Currency(-25000))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "1.234", Number(1234))
	assert.Equal(t, "12", Number(12))
}

func TestDecimal(t *testing.T) {
	assert.Equal(t, "Rp 7.500.000", Decimal(decimal.NewFromInt(2500).Mul(decimal.NewFromInt(3000))))
	assert.Equal(t, "Rp 11", Decimal(decimal.RequireFromString("10.6")))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "02 Januari 2025", Date("2025-01-02"))
	assert.Equal(t, "31 Desember 2024", Date("2024-12-31"))
	assert.Equal(t, "bukan tanggal", Date("bukan tanggal"))
	assert.Equal(t, "17 Agustus 1945", DateOf(time.Date(1945, time.August, 17, 0, 0, 0, 0, time.UTC)))
}

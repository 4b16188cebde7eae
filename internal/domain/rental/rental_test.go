package rental

import (
	"context"
	"encoding/json"
	"scaffold-rental/internal/domain/customer"
	"scaffold-rental/internal/domain/inventory"
	"scaffold-rental/internal/domain/record"
	"scaffold-rental/internal/pkg/apperrors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrder() Order {
	return Order{
		OrderID:    "ORD-2025-001",
		CustomerID: "012345678901234",
		ItemIDs:    []string{"FR-01", "PP-02"},
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-31",
		Status:     QuotationApproved,
	}
}

func TestStatusTablesAreComplete(t *testing.T) {
	for _, s := range Statuses() {
		assert.NotEmpty(t, statusNames[s])
		assert.NotEmpty(t, statusLabels[s])
		assert.NotEmpty(t, statusBadges[s])
	}
	assert.Equal(t, "Dipesan", Booked.Label())
	assert.Equal(t, "Disetujui", QuotationApproved.Label())
	assert.Equal(t, "Dikirim", Delivered.Label())
	assert.Equal(t, "Aktif", Active.Label())
	assert.Equal(t, "Dikembalikan", Returned.Label())
}

func TestStatus_InProgress(t *testing.T) {
	assert.True(t, Active.InProgress())
	assert.True(t, Delivered.InProgress())
	assert.False(t, Booked.InProgress())
	assert.False(t, Returned.InProgress())
}

func TestOrder_Validate(t *testing.T) {
	t.Run("Valid order", func(t *testing.T) {
		assert.Empty(t, validOrder().Validate())
	})

	t.Run("Empty item list fails", func(t *testing.T) {
		o := validOrder()
		o.ItemIDs = []string{}

		errs := o.Validate()

		assert.Equal(t, "Minimal satu item harus dipilih", errs["itemIds"])
		assert.ErrorIs(t, errs.Err(), apperrors.ErrValidation)
	})

	t.Run("End before start", func(t *testing.T) {
		o := validOrder()
		o.EndDate = "2025-02-01"

		assert.Equal(t, "Tanggal akhir harus setelah tanggal mulai", o.Validate()["dates"])
	})

	t.Run("Missing customer", func(t *testing.T) {
		o := validOrder()
		o.CustomerID = ""

		assert.Equal(t, "Pelanggan harus dipilih", o.Validate()["customerId"])
	})
}

func TestNewOrderDefaults(t *testing.T) {
	o := newOrderAt(time.Date(2025, time.January, 2, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, Booked, o.Status)
	assert.Equal(t, "2025-01-02", o.StartDate)
	assert.Equal(t, "2025-01-02", o.EndDate)
	assert.Empty(t, o.ItemIDs)
	assert.Equal(t, "ID pesanan tidak boleh kosong", o.Validate()["orderId"])
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-01-02", "2025-01-02"},
		{" 2025-01-02 ", "2025-01-02"},
		{"2025-01-02T10:00:00Z", "2025-01-02"},
		{"2025-01-02T23:30:00+07:00", "2025-01-02"},
		{"besok", "besok"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.input))
		})
	}
}

func TestFormSchemaNormalizesDates(t *testing.T) {
	o := NewOrder()
	require.NoError(t, FormSchema.Fields["startDate"].Set(&o, "2025-03-01T08:00:00Z"))
	require.NoError(t, FormSchema.Fields["endDate"].Set(&o, "2025-03-10"))

	assert.Equal(t, "2025-03-01", o.StartDate)
	assert.Equal(t, "2025-03-10", o.EndDate)
}

func TestOrderJSON(t *testing.T) {
	body, err := json.Marshal(validOrder())
	require.NoError(t, err)
	assert.JSONEq(t, `{"orderId":"ORD-2025-001","customerId":"012345678901234","itemIds":["FR-01","PP-02"],"startDate":"2025-03-01","endDate":"2025-03-31","status":"QuotationApproved"}`, string(body))
}

func TestReferenceChecker(t *testing.T) {
	ctx := context.Background()
	checker := ReferenceChecker{
		Customers: record.NewMemoryRepository(customer.Customer{NPWP: "012345678901234", Name: "PT Maju"}),
		Items: record.NewMemoryRepository(
			inventory.Item{ItemID: "FR-01"},
			inventory.Item{ItemID: "PP-02"},
		),
	}

	assert.NoError(t, checker.Check(ctx, validOrder()))

	o := validOrder()
	o.CustomerID = "999999999999999"
	o.ItemIDs = []string{"FR-01", "XX-99"}
	err := checker.Check(ctx, o)

	require.ErrorIs(t, err, apperrors.ErrValidation)
	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	assert.Equal(t, "Pelanggan tidak ditemukan", fields["customerId"])
	assert.Equal(t, "Item tidak ditemukan: XX-99", fields["itemIds"])
}

func TestListSchema(t *testing.T) {
	assert.Equal(t,
		[]string{"ORD-2025-001", "012345678901234", "2 item", "01 Maret 2025", "31 Maret 2025", "Disetujui"},
		ListSchema.Cells(validOrder()))
}

package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"scaffold-rental/internal/domain/dashboard"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSummaryProvider struct {
	mock.Mock
}

func (m *MockSummaryProvider) Summary(ctx context.Context) (dashboard.Summary, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(dashboard.Summary); ok {
		return s, args.Error(1)
	}
	return dashboard.Summary{}, args.Error(1)
}

type published struct {
	customers, units, orders int64
	value                    float64
	calls                    int
}

func newTestJob(p SummaryProvider, out *published) *RefreshDashboardJob {
	j := NewRefreshDashboardJob(p, slog.New(slog.NewTextHandler(io.Discard, nil)))
	j.publish = func(customers, units, orders int64, value float64) {
		out.customers, out.units, out.orders, out.value = customers, units, orders, value
		out.calls++
	}
	return j
}

func TestRefreshDashboardJob_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes the summary", func(t *testing.T) {
		provider := new(MockSummaryProvider)
		provider.On("Summary", ctx).Return(dashboard.Summary{
			TotalCustomers: 3,
			InventoryUnits: 350,
			ActiveOrders:   2,
			InventoryValue: decimal.NewFromInt(53750000),
		}, nil).Once()

		var out published
		err := newTestJob(provider, &out).Run(ctx)

		assert.NoError(t, err)
		assert.Equal(t, published{customers: 3, units: 350, orders: 2, value: 53750000, calls: 1}, out)
		provider.AssertExpectations(t)
	})

	t.Run("summary failure leaves gauges untouched", func(t *testing.T) {
		provider := new(MockSummaryProvider)
		provider.On("Summary", ctx).Return(nil, errors.New("db down")).Once()

		var out published
		err := newTestJob(provider, &out).Run(ctx)

		assert.ErrorContains(t, err, "db down")
		assert.Zero(t, out.calls)
		provider.AssertExpectations(t)
	})
}

func TestNewRefreshDashboardJob_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewRefreshDashboardJob(nil, slog.Default()) })
	assert.Panics(t, func() { NewRefreshDashboardJob(new(MockSummaryProvider), nil) })
}

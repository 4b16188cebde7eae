package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMutation(t *testing.T) {
	before := testutil.ToFloat64(Business.RecordMutationsTotal.WithLabelValues("vendors", "create"))

	RecordMutation("vendors", "create")
	RecordMutation("vendors", "create")

	after := testutil.ToFloat64(Business.RecordMutationsTotal.WithLabelValues("vendors", "create"))
	assert.Equal(t, before+2, after)
}

func TestSetDashboard(t *testing.T) {
	SetDashboard(3, 120, 2, 7500000)

	assert.Equal(t, float64(3), testutil.ToFloat64(Business.CustomersTotal))
	assert.Equal(t, float64(120), testutil.ToFloat64(Business.InventoryUnits))
	assert.Equal(t, float64(2), testutil.ToFloat64(Business.ActiveOrders))
	assert.Equal(t, float64(7500000), testutil.ToFloat64(Business.InventoryValue))
}

func TestRecordDBQuery(t *testing.T) {
	RecordDBQuery("customers.find_all", "success", 12*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(DB.QueryDuration, "scaffold_rental_db_query_duration_seconds"))
}

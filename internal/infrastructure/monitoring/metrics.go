package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	RecordMutationsTotal *prometheus.CounterVec
	CustomersTotal       prometheus.Gauge
	InventoryUnits       prometheus.Gauge
	InventoryValue       prometheus.Gauge
	ActiveOrders         prometheus.Gauge
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scaffold_rental_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		RecordMutationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scaffold_rental_record_mutations_total",
				Help: "Total number of successful record mutations.",
			},
			[]string{"collection", "operation"},
		),
		CustomersTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scaffold_rental_customers",
			Help: "Number of registered customers.",
		}),
		InventoryUnits: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scaffold_rental_inventory_units",
			Help: "Total quantity across all inventory items.",
		}),
		InventoryValue: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scaffold_rental_inventory_value_rupiah",
			Help: "Sum of acquisition cost times quantity across inventory.",
		}),
		ActiveOrders: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scaffold_rental_active_orders",
			Help: "Rental orders currently delivered or active.",
		}),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordMutation(collection, operation string) {
	Business.RecordMutationsTotal.WithLabelValues(collection, operation).Inc()
}

func SetDashboard(customers, inventoryUnits, activeOrders int64, inventoryValue float64) {
	Business.CustomersTotal.Set(float64(customers))
	Business.InventoryUnits.Set(float64(inventoryUnits))
	Business.ActiveOrders.Set(float64(activeOrders))
	Business.InventoryValue.Set(inventoryValue)
}

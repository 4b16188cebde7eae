package dashboard

import (
	"context"
	"fmt"
	"scaffold-rental/internal/domain/customer"
	"scaffold-rental/internal/domain/inventory"
	"scaffold-rental/internal/domain/rental"
	"scaffold-rental/internal/format"

	"github.com/shopspring/decimal"
)

// Summary holds the headline figures of the rental business.
type Summary struct {
	TotalCustomers int64           `json:"totalCustomers"`
	InventoryUnits int64           `json:"inventoryUnits"`
	ActiveOrders   int64           `json:"activeOrders"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
}

// KPI is one labelled dashboard card.
type KPI struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

func Compute(customers []customer.Customer, items []inventory.Item, orders []rental.Order) Summary {
	s := Summary{
		TotalCustomers: int64(len(customers)),
		InventoryValue: decimal.Zero,
	}
	for _, it := range items {
		s.InventoryUnits += it.Quantity
		s.InventoryValue = s.InventoryValue.Add(decimal.NewFromInt(it.AcquisitionCost).Mul(decimal.NewFromInt(it.Quantity)))
	}
	for _, o := range orders {
		if o.Status.InProgress() {
			s.ActiveOrders++
		}
	}
	return s
}

func (s Summary) KPIs() []KPI {
	return []KPI{
		{Title: "Total Pelanggan", Value: format.Number(s.TotalCustomers)},
		{Title: "Total Inventori", Value: format.Number(s.InventoryUnits)},
		{Title: "Pesanan Aktif", Value: format.Number(s.ActiveOrders)},
		{Title: "Nilai Inventori", Value: format.Decimal(s.InventoryValue)},
	}
}

type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

type Service struct {
	customers Lister[customer.Customer]
	items     Lister[inventory.Item]
	orders    Lister[rental.Order]
}

func NewService(customers Lister[customer.Customer], items Lister[inventory.Item], orders Lister[rental.Order]) *Service {
	if customers == nil || items == nil || orders == nil {
		panic("dashboard sources cannot be nil")
	}
	return &Service{customers: customers, items: items, orders: orders}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	cs, err := s.customers.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load customers: %w", err)
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load inventory: %w", err)
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load orders: %w", err)
	}
	return Compute(cs, items, orders), nil
}

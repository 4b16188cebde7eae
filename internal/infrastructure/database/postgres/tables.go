package postgres

import (
	"fmt"
	"log/slog"
	"scaffold-rental/internal/domain/customer"
	"scaffold-rental/internal/domain/inventory"
	"scaffold-rental/internal/domain/record"
	"scaffold-rental/internal/domain/rental"
	"scaffold-rental/internal/domain/vendors"
	"scaffold-rental/internal/validation"
	"time"
)

var customerTable = table[customer.Customer]{
	name:    "customers",
	columns: []string{"npwp", "name", "contact_person", "phone", "email", "address", "credit_limit"},
	scan: func(row rowScanner) (customer.Customer, error) {
		var c customer.Customer
		err := row.Scan(&c.NPWP, &c.Name, &c.ContactPerson, &c.Phone, &c.Email, &c.Address, &c.CreditLimit)
		return c, err
	},
	values: func(c customer.Customer) ([]any, error) {
		return []any{c.NPWP, c.Name, c.ContactPerson, c.Phone, c.Email, c.Address, c.CreditLimit}, nil
	},
}

var vendorTable = table[vendors.Vendor]{
	name:    "vendors",
	columns: []string{"npwp", "company_name", "contact_person", "phone", "email", "address", "bank_account", "payment_terms"},
	scan: func(row rowScanner) (vendors.Vendor, error) {
		var v vendors.Vendor
		err := row.Scan(&v.NPWP, &v.CompanyName, &v.ContactPerson, &v.Phone, &v.Email, &v.Address, &v.BankAccount, &v.PaymentTerms)
		return v, err
	},
	values: func(v vendors.Vendor) ([]any, error) {
		return []any{v.NPWP, v.CompanyName, v.ContactPerson, v.Phone, v.Email, v.Address, v.BankAccount, v.PaymentTerms}, nil
	},
}

var inventoryTable = table[inventory.Item]{
	name:    "inventory_items",
	columns: []string{"item_id", "item_type", "quantity", "location", "condition", "acquisition_cost"},
	scan: func(row rowScanner) (inventory.Item, error) {
		var (
			it                  inventory.Item
			itemType, condition string
		)
		if err := row.Scan(&it.ItemID, &itemType, &it.Quantity, &it.Location, &condition, &it.AcquisitionCost); err != nil {
			return it, err
		}
		var err error
		if it.ItemType, err = inventory.ParseItemType(itemType); err != nil {
			return it, err
		}
		if it.Condition, err = inventory.ParseCondition(condition); err != nil {
			return it, err
		}
		return it, nil
	},
	values: func(it inventory.Item) ([]any, error) {
		if !it.ItemType.Valid() || !it.Condition.Valid() {
			return nil, fmt.Errorf("invalid enum value on item %q", it.ItemID)
		}
		return []any{it.ItemID, it.ItemType.String(), it.Quantity, it.Location, it.Condition.String(), it.AcquisitionCost}, nil
	},
}

var rentalTable = table[rental.Order]{
	name:    "rental_orders",
	columns: []string{"order_id", "customer_id", "item_ids", "start_date", "end_date", "status"},
	scan: func(row rowScanner) (rental.Order, error) {
		var (
			o          rental.Order
			start, end time.Time
			status     string
		)
		if err := row.Scan(&o.OrderID, &o.CustomerID, &o.ItemIDs, &start, &end, &status); err != nil {
			return o, err
		}
		o.StartDate = formatDate(start)
		o.EndDate = formatDate(end)
		var err error
		o.Status, err = rental.ParseStatus(status)
		if o.ItemIDs == nil {
			o.ItemIDs = []string{}
		}
		return o, err
	},
	values: func(o rental.Order) ([]any, error) {
		start, err := parseDate(o.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(o.EndDate)
		if err != nil {
			return nil, err
		}
		if !o.Status.Valid() {
			return nil, fmt.Errorf("invalid status on order %q", o.OrderID)
		}
		return []any{o.OrderID, o.CustomerID, o.ItemIDs, start, end, o.Status.String()}, nil
	},
}

// Orders keep dates as strings; the table stores them as DATE.
func parseDate(s string) (time.Time, error) {
	t, err := validation.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(rental.DateLayout)
}

func NewCustomerRepository(db DBPool, logger *slog.Logger) *RecordRepository[customer.Customer] {
	return newRecordRepository(db, customerTable, logger)
}

func NewVendorRepository(db DBPool, logger *slog.Logger) *RecordRepository[vendors.Vendor] {
	return newRecordRepository(db, vendorTable, logger)
}

func NewInventoryRepository(db DBPool, logger *slog.Logger) *RecordRepository[inventory.Item] {
	return newRecordRepository(db, inventoryTable, logger)
}

func NewRentalOrderRepository(db DBPool, logger *slog.Logger) *RecordRepository[rental.Order] {
	return newRecordRepository(db, rentalTable, logger)
}

var (
	_ record.Repository[customer.Customer] = (*RecordRepository[customer.Customer])(nil)
	_ record.Repository[vendors.Vendor]    = (*RecordRepository[vendors.Vendor])(nil)
	_ record.Repository[inventory.Item]    = (*RecordRepository[inventory.Item])(nil)
	_ record.Repository[rental.Order]      = (*RecordRepository[rental.Order])(nil)
)

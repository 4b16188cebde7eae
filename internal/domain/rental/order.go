package rental

import (
	"scaffold-rental/internal/validation"
	"strings"
	"time"
)

const Collection = "orders"

const DateLayout = "2006-01-02"

const (
	msgOrderIDRequired  = "ID pesanan tidak boleh kosong"
	msgCustomerRequired = "Pelanggan harus dipilih"
	msgItemsRequired    = "Minimal satu item harus dipilih"
	msgStatusInvalid    = "Status tidak valid"
)

// Order is a rental agreement for a set of inventory items over a date range.
// Dates are calendar dates in YYYY-MM-DD form.
type Order struct {
	OrderID    string   `json:"orderId"`
	CustomerID string   `json:"customerId"`
	ItemIDs    []string `json:"itemIds"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Status     Status   `json:"status"`
}

// NewOrder returns a booked draft starting and ending today.
func NewOrder() Order {
	return newOrderAt(time.Now())
}

func newOrderAt(now time.Time) Order {
	today := now.Format(DateLayout)
	return Order{
		ItemIDs:   []string{},
		StartDate: today,
		EndDate:   today,
		Status:    Booked,
	}
}

// NormalizeDate rewrites any accepted date layout as YYYY-MM-DD, the form the
// store keeps. Unparseable input is returned trimmed for validation to report.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	t, err := validation.ParseDate(value)
	if err != nil {
		return value
	}
	return t.Format(DateLayout)
}

func (o Order) Key() string { return o.OrderID }

func (o Order) KeyField() string { return "orderId" }

func (o Order) Validate() validation.FieldErrors {
	errs := validation.FieldErrors{}
	validation.Check(errs, "orderId", validation.Required(o.OrderID, msgOrderIDRequired))
	validation.Check(errs, "customerId", validation.Required(o.CustomerID, msgCustomerRequired))
	if len(o.ItemIDs) == 0 {
		errs["itemIds"] = msgItemsRequired
	} else {
		for _, id := range o.ItemIDs {
			if strings.TrimSpace(id) == "" {
				errs["itemIds"] = msgItemsRequired
				break
			}
		}
	}
	validation.Check(errs, "dates", validation.DateRange(o.StartDate, o.EndDate))
	if !o.Status.Valid() {
		errs["status"] = msgStatusInvalid
	}
	return errs
}

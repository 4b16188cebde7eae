package rental

import (
	"context"
	"errors"
	"fmt"
	"scaffold-rental/internal/domain/customer"
	"scaffold-rental/internal/domain/inventory"
	"scaffold-rental/internal/domain/record"
	"scaffold-rental/internal/pkg/apperrors"
	"scaffold-rental/internal/validation"
)

const (
	msgCustomerUnknown = "Pelanggan tidak ditemukan"
	msgItemUnknown     = "Item tidak ditemukan: %s"
)

// ReferenceChecker verifies that an order points at an existing customer and
// existing inventory items.
type ReferenceChecker struct {
	Customers record.Repository[customer.Customer]
	Items     record.Repository[inventory.Item]
}

func (c ReferenceChecker) Check(ctx context.Context, o Order) error {
	errs := validation.FieldErrors{}

	if _, err := c.Customers.FindByKey(ctx, o.CustomerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to look up customer %q: %w", o.CustomerID, err)
		}
		errs["customerId"] = msgCustomerUnknown
	}

	for _, id := range o.ItemIDs {
		if _, err := c.Items.FindByKey(ctx, id); err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("failed to look up inventory item %q: %w", id, err)
			}
			errs["itemIds"] = fmt.Sprintf(msgItemUnknown, id)
			break
		}
	}

	return errs.Err()
}

var _ record.Checker[Order] = ReferenceChecker{}

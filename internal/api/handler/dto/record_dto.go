package dto

import (
	"errors"
	"reflect"
	"scaffold-rental/internal/domain/customer"
	"scaffold-rental/internal/domain/inventory"
	"scaffold-rental/internal/domain/rental"
	"scaffold-rental/internal/domain/vendors"
	"scaffold-rental/internal/pkg/apperrors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Request is a record request body that converts into its domain entity.
type Request[T any] interface {
	ToDomain() T
}

// Struct tags only bound sizes. Business rules and their messages belong to
// the entity's own Validate.
type CustomerRequest struct {
	Name          string `json:"name" validate:"max=200"`
	NPWP          string `json:"npwp" validate:"max=32"`
	ContactPerson string `json:"contactPerson" validate:"max=200"`
	Phone         string `json:"phone" validate:"max=32"`
	Email         string `json:"email" validate:"max=254"`
	Address       string `json:"address" validate:"max=500"`
	CreditLimit   int64  `json:"creditLimit"`
}

func (r CustomerRequest) ToDomain() customer.Customer {
	return customer.Customer{
		Name:          strings.TrimSpace(r.Name),
		NPWP:          strings.TrimSpace(r.NPWP),
		ContactPerson: strings.TrimSpace(r.ContactPerson),
		Phone:         strings.TrimSpace(r.Phone),
		Email:         strings.TrimSpace(r.Email),
		Address:       strings.TrimSpace(r.Address),
		CreditLimit:   r.CreditLimit,
	}
}

type VendorRequest struct {
	CompanyName   string `json:"companyName" validate:"max=200"`
	NPWP          string `json:"npwp" validate:"max=32"`
	ContactPerson string `json:"contactPerson" validate:"max=200"`
	Phone         string `json:"phone" validate:"max=32"`
	Email         string `json:"email" validate:"max=254"`
	Address       string `json:"address" validate:"max=500"`
	BankAccount   string `json:"bankAccount" validate:"max=100"`
	PaymentTerms  int64  `json:"paymentTerms" validate:"lte=3650"`
}

func (r VendorRequest) ToDomain() vendors.Vendor {
	return vendors.Vendor{
		CompanyName:   strings.TrimSpace(r.CompanyName),
		NPWP:          strings.TrimSpace(r.NPWP),
		ContactPerson: strings.TrimSpace(r.ContactPerson),
		Phone:         strings.TrimSpace(r.Phone),
		Email:         strings.TrimSpace(r.Email),
		Address:       strings.TrimSpace(r.Address),
		BankAccount:   strings.TrimSpace(r.BankAccount),
		PaymentTerms:  r.PaymentTerms,
	}
}

type InventoryItemRequest struct {
	ItemID          string              `json:"itemId" validate:"max=64"`
	ItemType        inventory.ItemType  `json:"itemType"`
	Quantity        int64               `json:"quantity"`
	Location        string              `json:"location" validate:"max=200"`
	Condition       inventory.Condition `json:"condition"`
	AcquisitionCost int64               `json:"acquisitionCost"`
}

func (r InventoryItemRequest) ToDomain() inventory.Item {
	return inventory.Item{
		ItemID:          strings.TrimSpace(r.ItemID),
		ItemType:        r.ItemType,
		Quantity:        r.Quantity,
		Location:        strings.TrimSpace(r.Location),
		Condition:       r.Condition,
		AcquisitionCost: r.AcquisitionCost,
	}
}

type RentalOrderRequest struct {
	OrderID    string        `json:"orderId" validate:"max=64"`
	CustomerID string        `json:"customerId" validate:"max=32"`
	ItemIDs    []string      `json:"itemIds" validate:"max=500,dive,max=64"`
	StartDate  string        `json:"startDate" validate:"max=32"`
	EndDate    string        `json:"endDate" validate:"max=32"`
	Status     rental.Status `json:"status"`
}

func (r RentalOrderRequest) ToDomain() rental.Order {
	ids := make([]string, 0, len(r.ItemIDs))
	for _, id := range r.ItemIDs {
		ids = append(ids, strings.TrimSpace(id))
	}
	return rental.Order{
		OrderID:    strings.TrimSpace(r.OrderID),
		CustomerID: strings.TrimSpace(r.CustomerID),
		ItemIDs:    ids,
		StartDate:  rental.NormalizeDate(r.StartDate),
		EndDate:    rental.NormalizeDate(r.EndDate),
		Status:     r.Status,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks struct tags on v and reports failures per JSON field.
func Validate(v any) error {
	err := structValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := apperrors.FieldErrors{}
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = tagMessage(fe)
	}
	return fields.Err()
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		if fe.Kind() == reflect.Slice {
			return "Maksimal " + fe.Param() + " item"
		}
		return "Maksimal " + fe.Param() + " karakter"
	case "lte":
		return "Nilai maksimal " + fe.Param()
	case "required":
		return "Field tidak boleh kosong"
	case "email":
		return "Format email tidak valid"
	default:
		return "Nilai tidak valid"
	}
}

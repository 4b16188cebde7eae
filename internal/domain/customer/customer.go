package customer

import (
	"scaffold-rental/internal/validation"
)

const Collection = "customers"

const (
	msgNameRequired    = "Nama perusahaan tidak boleh kosong"
	msgAddressRequired = "Alamat tidak boleh kosong"
	msgContactRequired = "Kontak person tidak boleh kosong"
)

// Customer is a renting company, keyed by its NPWP.
type Customer struct {
	Name          string `json:"name"`
	NPWP          string `json:"npwp"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	CreditLimit   int64  `json:"creditLimit"`
}

func New() Customer {
	return Customer{}
}

func (c Customer) Key() string { return c.NPWP }

func (c Customer) KeyField() string { return "npwp" }

func (c Customer) Validate() validation.FieldErrors {
	errs := validation.FieldErrors{}
	validation.Check(errs, "name", validation.Required(c.Name, msgNameRequired))
	validation.Check(errs, "npwp", validation.NPWP(c.NPWP))
	validation.Check(errs, "address", validation.Required(c.Address, msgAddressRequired))
	validation.Check(errs, "contactPerson", validation.Required(c.ContactPerson, msgContactRequired))
	validation.Check(errs, "phone", validation.Phone(c.Phone))
	validation.Check(errs, "email", validation.Email(c.Email))
	validation.Check(errs, "creditLimit", validation.NonNegative(c.CreditLimit))
	return errs
}

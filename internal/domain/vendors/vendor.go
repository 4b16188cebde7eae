package vendors

import (
	"scaffold-rental/internal/validation"
)

const (
	Collection          = "vendors"
	DefaultPaymentTerms = 30
)

const (
	msgCompanyRequired = "Nama perusahaan tidak boleh kosong"
	msgAddressRequired = "Alamat tidak boleh kosong"
	msgContactRequired = "Kontak person tidak boleh kosong"
	msgBankRequired    = "Nomor rekening tidak boleh kosong"
)

// Vendor is a supplier of scaffolding material, keyed by its NPWP.
// PaymentTerms is in days.
type Vendor struct {
	CompanyName   string `json:"companyName"`
	NPWP          string `json:"npwp"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	BankAccount   string `json:"bankAccount"`
	PaymentTerms  int64  `json:"paymentTerms"`
}

func New() Vendor {
	return Vendor{PaymentTerms: DefaultPaymentTerms}
}

func (v Vendor) Key() string { return v.NPWP }

func (v Vendor) KeyField() string { return "npwp" }

func (v Vendor) Validate() validation.FieldErrors {
	errs := validation.FieldErrors{}
	validation.Check(errs, "companyName", validation.Required(v.CompanyName, msgCompanyRequired))
	validation.Check(errs, "npwp", validation.NPWP(v.NPWP))
	validation.Check(errs, "address", validation.Required(v.Address, msgAddressRequired))
	validation.Check(errs, "contactPerson", validation.Required(v.ContactPerson, msgContactRequired))
	validation.Check(errs, "phone", validation.Phone(v.Phone))
	validation.Check(errs, "email", validation.Email(v.Email))
	validation.Check(errs, "bankAccount", validation.Required(v.BankAccount, msgBankRequired))
	validation.Check(errs, "paymentTerms", validation.NonNegative(v.PaymentTerms))
	return errs
}

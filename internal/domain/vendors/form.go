package vendors

import (
	"scaffold-rental/internal/form"
	"scaffold-rental/internal/format"
	"scaffold-rental/internal/listview"
)

var FormSchema = form.Schema[Vendor]{
	New:      New,
	KeyField: "npwp",
	Fields: map[string]form.Binder[Vendor]{
		"companyName":   form.Text(func(v *Vendor) *string { return &v.CompanyName }),
		"npwp":          form.Text(func(v *Vendor) *string { return &v.NPWP }),
		"contactPerson": form.Text(func(v *Vendor) *string { return &v.ContactPerson }),
		"phone":         form.Text(func(v *Vendor) *string { return &v.Phone }),
		"email":         form.Text(func(v *Vendor) *string { return &v.Email }),
		"address":       form.Text(func(v *Vendor) *string { return &v.Address }),
		"bankAccount":   form.Text(func(v *Vendor) *string { return &v.BankAccount }),
		"paymentTerms":  form.Int(func(v *Vendor) *int64 { return &v.PaymentTerms }),
	},
}

var ListSchema = listview.Schema[Vendor]{
	Columns: []listview.Column[Vendor]{
		{Header: "Nama Perusahaan", Render: func(v Vendor) string { return v.CompanyName }},
		{Header: "NPWP", Render: func(v Vendor) string { return format.NPWP(v.NPWP) }},
		{Header: "Kontak Person", Render: func(v Vendor) string { return v.ContactPerson }},
		{Header: "Telepon", Render: func(v Vendor) string { return v.Phone }},
		{Header: "Termin Pembayaran", Render: func(v Vendor) string { return format.Number(v.PaymentTerms) + " hari" }},
	},
	Key: Vendor.Key,
}

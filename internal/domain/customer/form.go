package customer

import (
	"scaffold-rental/internal/form"
	"scaffold-rental/internal/format"
	"scaffold-rental/internal/listview"
)

var FormSchema = form.Schema[Customer]{
	New:      New,
	KeyField: "npwp",
	Fields: map[string]form.Binder[Customer]{
		"name":          form.Text(func(c *Customer) *string { return &c.Name }),
		"npwp":          form.Text(func(c *Customer) *string { return &c.NPWP }),
		"contactPerson": form.Text(func(c *Customer) *string { return &c.ContactPerson }),
		"phone":         form.Text(func(c *Customer) *string { return &c.Phone }),
		"email":         form.Text(func(c *Customer) *string { return &c.Email }),
		"address":       form.Text(func(c *Customer) *string { return &c.Address }),
		"creditLimit":   form.Int(func(c *Customer) *int64 { return &c.CreditLimit }),
	},
}

var ListSchema = listview.Schema[Customer]{
	Columns: []listview.Column[Customer]{
		{Header: "Nama Perusahaan", Render: func(c Customer) string { return c.Name }},
		{Header: "NPWP", Render: func(c Customer) string { return format.NPWP(c.NPWP) }},
		{Header: "Kontak Person", Render: func(c Customer) string { return c.ContactPerson }},
		{Header: "Telepon", Render: func(c Customer) string { return c.Phone }},
		{Header: "Limit Kredit", Render: func(c Customer) string { return format.Currency(c.CreditLimit) }},
	},
	Key: Customer.Key,
}

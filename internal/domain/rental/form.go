package rental

import (
	"scaffold-rental/internal/form"
	"scaffold-rental/internal/format"
	"scaffold-rental/internal/listview"
	"strconv"
)

var FormSchema = form.Schema[Order]{
	New:      NewOrder,
	KeyField: "orderId",
	Fields: map[string]form.Binder[Order]{
		"orderId":    form.Text(func(o *Order) *string { return &o.OrderID }),
		"customerId": form.Text(func(o *Order) *string { return &o.CustomerID }),
		"itemIds":    form.List(func(o *Order) *[]string { return &o.ItemIDs }),
		"startDate":  dateField(func(o *Order) *string { return &o.StartDate }),
		"endDate":    dateField(func(o *Order) *string { return &o.EndDate }),
		"status": form.Parse(func(o *Order, value string) error {
			s, err := ParseStatus(value)
			if err != nil {
				return err
			}
			o.Status = s
			return nil
		}),
	},
}

func dateField(field func(o *Order) *string) form.Binder[Order] {
	return form.Parse(func(o *Order, value string) error {
		*field(o) = NormalizeDate(value)
		return nil
	})
}

var ListSchema = listview.Schema[Order]{
	Columns: []listview.Column[Order]{
		{Header: "ID Pesanan", Render: func(o Order) string { return o.OrderID }},
		{Header: "Pelanggan", Render: func(o Order) string { return o.CustomerID }},
		{Header: "Jumlah Item", Render: func(o Order) string { return strconv.Itoa(len(o.ItemIDs)) + " item" }},
		{Header: "Tanggal Mulai", Render: func(o Order) string { return format.Date(o.StartDate) }},
		{Header: "Tanggal Selesai", Render: func(o Order) string { return format.Date(o.EndDate) }},
		{Header: "Status", Render: func(o Order) string { return o.Status.Label() }},
	},
	Key: Order.Key,
}

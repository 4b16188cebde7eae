package inventory

import (
	"scaffold-rental/internal/form"
	"scaffold-rental/internal/format"
	"scaffold-rental/internal/listview"
)

var FormSchema = form.Schema[Item]{
	New:      NewItem,
	KeyField: "itemId",
	Fields: map[string]form.Binder[Item]{
		"itemId": form.Text(func(i *Item) *string { return &i.ItemID }),
		"itemType": form.Parse(func(i *Item, value string) error {
			t, err := ParseItemType(value)
			if err != nil {
				return err
			}
			i.ItemType = t
			return nil
		}),
		"quantity": form.Int(func(i *Item) *int64 { return &i.Quantity }),
		"location": form.Text(func(i *Item) *string { return &i.Location }),
		"condition": form.Parse(func(i *Item, value string) error {
			c, err := ParseCondition(value)
			if err != nil {
				return err
			}
			i.Condition = c
			return nil
		}),
		"acquisitionCost": form.Int(func(i *Item) *int64 { return &i.AcquisitionCost }),
	},
}

var ListSchema = listview.Schema[Item]{
	Columns: []listview.Column[Item]{
		{Header: "ID Item", Render: func(i Item) string { return i.ItemID }},
		{Header: "Tipe", Render: func(i Item) string { return i.ItemType.Label() }},
		{Header: "Jumlah", Render: func(i Item) string { return format.Number(i.Quantity) }},
		{Header: "Kondisi", Render: func(i Item) string { return i.Condition.Label() }},
		{Header: "Lokasi", Render: func(i Item) string { return i.Location }},
		{Header: "Harga Satuan", Render: func(i Item) string { return format.Currency(i.AcquisitionCost) }},
	},
	Key: Item.Key,
}

package inventory

import (
	"scaffold-rental/internal/validation"
)

const Collection = "inventory"

const (
	msgItemIDRequired   = "ID item tidak boleh kosong"
	msgLocationRequired = "Lokasi tidak boleh kosong"
	msgItemTypeInvalid  = "Tipe item tidak valid"
	msgConditionInvalid = "Kondisi tidak valid"
)

// Item is one stock line of rentable scaffolding material. AcquisitionCost is
// the unit price in rupiah.
type Item struct {
	ItemID          string    `json:"itemId"`
	ItemType        ItemType  `json:"itemType"`
	Quantity        int64     `json:"quantity"`
	Location        string    `json:"location"`
	Condition       Condition `json:"condition"`
	AcquisitionCost int64     `json:"acquisitionCost"`
}

func NewItem() Item {
	return Item{ItemType: Frame, Condition: New}
}

func (i Item) Key() string { return i.ItemID }

func (i Item) KeyField() string { return "itemId" }

func (i Item) Validate() validation.FieldErrors {
	errs := validation.FieldErrors{}
	validation.Check(errs, "itemId", validation.Required(i.ItemID, msgItemIDRequired))
	validation.Check(errs, "location", validation.Required(i.Location, msgLocationRequired))
	validation.Check(errs, "quantity", validation.NonNegative(i.Quantity))
	validation.Check(errs, "acquisitionCost", validation.NonNegative(i.AcquisitionCost))
	if !i.ItemType.Valid() {
		errs["itemType"] = msgItemTypeInvalid
	}
	if !i.Condition.Valid() {
		errs["condition"] = msgConditionInvalid
	}
	return errs
}

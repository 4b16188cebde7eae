package inventory

import (
	"encoding/json"
	"scaffold-rental/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumTablesAreComplete(t *testing.T) {
	for _, it := range ItemTypes() {
		assert.NotEmpty(t, itemTypeNames[it], "item type %d has no name", int(it))
	}
	for _, c := range Conditions() {
		assert.NotEmpty(t, conditionNames[c], "condition %d has no name", int(c))
		assert.NotEmpty(t, conditionLabels[c], "condition %s has no label", c)
		assert.NotEmpty(t, conditionBadges[c], "condition %s has no badge", c)
	}
}

func TestConditionLabels(t *testing.T) {
	assert.Equal(t, "Baru", New.Label())
	assert.Equal(t, "Baik", Good.Label())
	assert.Equal(t, "Cukup", Fair.Label())
	assert.Equal(t, "Rusak", Damaged.Label())
	assert.Equal(t, "destructive", Damaged.Badge())
	assert.Equal(t, "default", New.Badge())
}

func TestEnumParsing(t *testing.T) {
	for _, it := range ItemTypes() {
		parsed, err := ParseItemType(it.String())
		require.NoError(t, err)
		assert.Equal(t, it, parsed)
	}

	_, err := ParseItemType("Ladder")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = ParseCondition("Broken")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	assert.Equal(t, "ItemType(9)", ItemType(9).String())
}

func TestItemJSON(t *testing.T) {
	item := Item{ItemID: "FR-01", ItemType: Frame, Quantity: 120, Location: "Gudang A", Condition: Fair, AcquisitionCost: 350000}

	body, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t, `{"itemId":"FR-01","itemType":"Frame","quantity":120,"location":"Gudang A","condition":"Fair","acquisitionCost":350000}`, string(body))

	var decoded Item
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, item, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"itemType":"Ladder"}`), &decoded))
}

func TestItem_Validate(t *testing.T) {
	errs := NewItem().Validate()
	assert.Equal(t, "ID item tidak boleh kosong", errs["itemId"])
	assert.Equal(t, "Lokasi tidak boleh kosong", errs["location"])
	assert.Len(t, errs, 2)

	bad := Item{ItemID: "X", Location: "Y", Quantity: -1, ItemType: ItemType(42), Condition: Condition(-1)}
	errs = bad.Validate()
	assert.Contains(t, errs, "quantity")
	assert.Contains(t, errs, "itemType")
	assert.Contains(t, errs, "condition")
}

func TestNewItemDefaults(t *testing.T) {
	item := NewItem()
	assert.Equal(t, Frame, item.ItemType)
	assert.Equal(t, New, item.Condition)
}

func TestListSchema(t *testing.T) {
	item := Item{ItemID: "FR-01", ItemType: Frame, Quantity: 1200, Location: "Gudang A", Condition: Damaged, AcquisitionCost: 350000}

	assert.Equal(t, []string{"FR-01", "Frame", "1.200", "Rusak", "Gudang A", "Rp 350.000"}, ListSchema.Cells(item))
}

package inventory

import (
	"fmt"
	"scaffold-rental/internal/pkg/apperrors"
)

type ItemType int

const (
	Pipe ItemType = iota
	Board
	Frame
	Accessory
	Clamp
	itemTypeCount
)

var itemTypeNames = [...]string{
	Pipe:      "Pipe",
	Board:     "Board",
	Frame:     "Frame",
	Accessory: "Accessory",
	Clamp:     "Clamp",
}

// Fails to compile when a variant is added without a name.
var _ = [1]struct{}{}[len(itemTypeNames)-int(itemTypeCount)]

func ItemTypes() []ItemType {
	out := make([]ItemType, itemTypeCount)
	for i := range out {
		out[i] = ItemType(i)
	}
	return out
}

func (t ItemType) Valid() bool { return t >= 0 && t < itemTypeCount }

func (t ItemType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ItemType(%d)", int(t))
	}
	return itemTypeNames[t]
}

// Label is the display name. Item types are shown untranslated.
func (t ItemType) Label() string { return t.String() }

func ParseItemType(s string) (ItemType, error) {
	for i, name := range itemTypeNames {
		if name == s {
			return ItemType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown item type %q", apperrors.ErrInvalidArgument, s)
}

func (t ItemType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: item type %d", apperrors.ErrInvalidArgument, int(t))
	}
	return []byte(t.String()), nil
}

func (t *ItemType) UnmarshalText(b []byte) error {
	v, err := ParseItemType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Condition int

const (
	New Condition = iota
	Good
	Fair
	Damaged
	conditionCount
)

var conditionNames = [...]string{
	New:     "New",
	Good:    "Good",
	Fair:    "Fair",
	Damaged: "Damaged",
}

var conditionLabels = [...]string{
	New:     "Baru",
	Good:    "Baik",
	Fair:    "Cukup",
	Damaged: "Rusak",
}

// Badge variants used when a condition is rendered as a badge.
var conditionBadges = [...]string{
	New:     "default",
	Good:    "secondary",
	Fair:    "outline",
	Damaged: "destructive",
}

var (
	_ = [1]struct{}{}[len(conditionNames)-int(conditionCount)]
	_ = [1]struct{}{}[len(conditionLabels)-int(conditionCount)]
	_ = [1]struct{}{}[len(conditionBadges)-int(conditionCount)]
)

func Conditions() []Condition {
	out := make([]Condition, conditionCount)
	for i := range out {
		out[i] = Condition(i)
	}
	return out
}

func (c Condition) Valid() bool { return c >= 0 && c < conditionCount }

func (c Condition) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Condition(%d)", int(c))
	}
	return conditionNames[c]
}

func (c Condition) Label() string {
	if !c.Valid() {
		return c.String()
	}
	return conditionLabels[c]
}

func (c Condition) Badge() string {
	if !c.Valid() {
		return "outline"
	}
	return conditionBadges[c]
}

func ParseCondition(s string) (Condition, error) {
	for i, name := range conditionNames {
		if name == s {
			return Condition(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown condition %q", apperrors.ErrInvalidArgument, s)
}

func (c Condition) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: condition %d", apperrors.ErrInvalidArgument, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Condition) UnmarshalText(b []byte) error {
	v, err := ParseCondition(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

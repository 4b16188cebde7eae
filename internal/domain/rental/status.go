package rental

import (
	"fmt"
	"scaffold-rental/internal/pkg/apperrors"
)

type Status int

const (
	Booked Status = iota
	QuotationApproved
	Delivered
	Active
	Returned
	statusCount
)

var statusNames = [...]string{
	Booked:            "Booked",
	QuotationApproved: "QuotationApproved",
	Delivered:         "Delivered",
	Active:            "Active",
	Returned:          "Returned",
}

var statusLabels = [...]string{
	Booked:            "Dipesan",
	QuotationApproved: "Disetujui",
	Delivered:         "Dikirim",
	Active:            "Aktif",
	Returned:          "Dikembalikan",
}

var statusBadges = [...]string{
	Booked:            "outline",
	QuotationApproved: "secondary",
	Delivered:         "default",
	Active:            "default",
	Returned:          "secondary",
}

var (
	_ = [1]struct{}{}[len(statusNames)-int(statusCount)]
	_ = [1]struct{}{}[len(statusLabels)-int(statusCount)]
	_ = [1]struct{}{}[len(statusBadges)-int(statusCount)]
)

func Statuses() []Status {
	out := make([]Status, statusCount)
	for i := range out {
		out[i] = Status(i)
	}
	return out
}

func (s Status) Valid() bool { return s >= 0 && s < statusCount }

// InProgress reports whether material is out with the customer.
func (s Status) InProgress() bool { return s == Active || s == Delivered }

func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) Label() string {
	if !s.Valid() {
		return s.String()
	}
	return statusLabels[s]
}

func (s Status) Badge() string {
	if !s.Valid() {
		return "outline"
	}
	return statusBadges[s]
}

func ParseStatus(v string) (Status, error) {
	for i, name := range statusNames {
		if name == v {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown rental status %q", apperrors.ErrInvalidArgument, v)
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: rental status %d", apperrors.ErrInvalidArgument, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

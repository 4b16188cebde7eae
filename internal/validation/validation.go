// Package validation holds the field-level business rules shared by every
// record form. All functions are pure and safe for concurrent use.
package validation

import (
	"math"
	"regexp"
	"scaffold-rental/internal/pkg/apperrors"
	"strconv"
	"strings"
	"time"
)

type Failure int

const (
	None Failure = iota
	EmptyField
	WrongLength
	InvalidFormat
	NotANumber
	Negative
	OrderViolation
)

func (f Failure) String() string {
	switch f {
	case None:
		return "None"
	case EmptyField:
		return "EmptyField"
	case WrongLength:
		return "WrongLength"
	case InvalidFormat:
		return "InvalidFormat"
	case NotANumber:
		return "NotANumber"
	case Negative:
		return "Negative"
	case OrderViolation:
		return "OrderViolation"
	default:
		return "Failure(" + strconv.Itoa(int(f)) + ")"
	}
}

type Result struct {
	Valid   bool
	Failure Failure
	Message string
}

const (
	NPWPLength     = 15
	PhoneMinDigits = 10
	PhoneMaxDigits = 15
)

const (
	msgNPWPEmpty     = "NPWP tidak boleh kosong"
	msgNPWPLength    = "NPWP harus 15 digit"
	msgEmailEmpty    = "Email tidak boleh kosong"
	msgEmailFormat   = "Format email tidak valid"
	msgPhoneEmpty    = "Nomor telepon tidak boleh kosong"
	msgPhoneLength   = "Nomor telepon harus 10-15 digit"
	msgNotANumber    = "Nilai harus berupa angka"
	msgNegative      = "Nilai tidak boleh negatif"
	msgDateFormat    = "Format tanggal tidak valid"
	msgDateOrder     = "Tanggal akhir harus setelah tanggal mulai"
	msgRequiredField = "Field tidak boleh kosong"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DateLayouts are tried in order when parsing a date field.
var DateLayouts = []string{"2006-01-02", time.RFC3339}

func pass() Result {
	return Result{Valid: true}
}

func fail(f Failure, message string) Result {
	return Result{Failure: f, Message: message}
}

// Digits returns the digit-only projection of s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func NPWP(value string) Result {
	digits := Digits(value)
	if digits == "" {
		return fail(EmptyField, msgNPWPEmpty)
	}
	if len(digits) != NPWPLength {
		return fail(WrongLength, msgNPWPLength)
	}
	return pass()
}

func Email(value string) Result {
	if value == "" {
		return fail(EmptyField, msgEmailEmpty)
	}
	if !emailPattern.MatchString(value) {
		return fail(InvalidFormat, msgEmailFormat)
	}
	return pass()
}

func Phone(value string) Result {
	digits := Digits(value)
	if digits == "" {
		return fail(EmptyField, msgPhoneEmpty)
	}
	if len(digits) < PhoneMinDigits || len(digits) > PhoneMaxDigits {
		return fail(WrongLength, msgPhoneLength)
	}
	return pass()
}

// PositiveNumber checks a raw numeric input. Zero passes.
func PositiveNumber(value string) Result {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) {
		return fail(NotANumber, msgNotANumber)
	}
	if n < 0 {
		return fail(Negative, msgNegative)
	}
	return pass()
}

func NonNegative(value int64) Result {
	if value < 0 {
		return fail(Negative, msgNegative)
	}
	return pass()
}

func DateRange(start, end string) Result {
	s, errStart := ParseDate(start)
	e, errEnd := ParseDate(end)
	if errStart != nil || errEnd != nil {
		return fail(InvalidFormat, msgDateFormat)
	}
	if e.Before(s) {
		return fail(OrderViolation, msgDateOrder)
	}
	return pass()
}

// Required fails when value is blank. An empty message falls back to a generic one.
func Required(value, message string) Result {
	if strings.TrimSpace(value) == "" {
		if message == "" {
			message = msgRequiredField
		}
		return fail(EmptyField, message)
	}
	return pass()
}

func ParseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, strings.TrimSpace(value))
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FieldErrors collects the first failing message per field.
type FieldErrors = apperrors.FieldErrors

// Check records r under field when it failed. It reports whether r passed.
func Check(errs FieldErrors, field string, r Result) bool {
	if r.Valid {
		return true
	}
	if _, exists := errs[field]; !exists {
		errs[field] = r.Message
	}
	return false
}

package contacts

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Name is a contact's display name and its key in a Directory.
type Name string

// NewName rejects the empty string.
func NewName(raw string) (Name, error) {
	if raw == "" {
		return "", fmt.Errorf("name: %w", ErrMissingArgument)
	}
	return Name(raw), nil
}

func (n Name) String() string { return string(n) }

// PhoneNumber is a string of exactly config.PhoneDigits ASCII digits.
type PhoneNumber struct {
	value string
}

// ValidPhoneNumber reports whether raw, once trimmed, is exactly ten ASCII digits.
func ValidPhoneNumber(raw string) bool {
	s := strings.TrimSpace(raw)
	if len(s) != config.PhoneDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NewPhoneNumber validates raw and stores its trimmed form.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	if !ValidPhoneNumber(raw) {
		return PhoneNumber{}, fmt.Errorf("%q: %w", raw, ErrInvalidPhoneFormat)
	}
	return PhoneNumber{value: strings.TrimSpace(raw)}, nil
}

func (p PhoneNumber) String() string { return p.value }

// Birthday is a calendar date with no time component, held at UTC midnight.
type Birthday struct {
	date time.Time
}

// ParseBirthday parses raw strictly as DD.MM.YYYY.
// Impossible dates such as 31.04.2024 or 29.02.2023 are rejected.
func ParseBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(config.DateFormatDisplay, raw)
	if err != nil {
		return Birthday{}, fmt.Errorf("%q: %w", raw, ErrInvalidDateFormat)
	}
	return Birthday{date: t}, nil
}

// NewBirthday builds a Birthday from date parts, normalizing the way time.Date does.
func NewBirthday(year int, month time.Month, day int) Birthday {
	return Birthday{date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Time returns the date at UTC midnight.
func (b Birthday) Time() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(config.DateFormatDisplay) }

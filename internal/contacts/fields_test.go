package contacts_test

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

var tenDigits = regexp.MustCompile(`^[0-9]{10}$`)

func TestNewName(t *testing.T) {
	n, err := contacts.NewName("John")
	require.NoError(t, err)
	assert.Equal(t, "John", n.String())

	_, err = contacts.NewName("")
	assert.ErrorIs(t, err, contacts.ErrMissingArgument)
}

func TestNewPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"ten digits", "0123456789", "0123456789", true},
		{"surrounding whitespace is trimmed", "  0123456789\t", "0123456789", true},
		{"nine digits", "012345678", "", false},
		{"eleven digits", "01234567890", "", false},
		{"separators", "012-345-678", "", false},
		{"inner space", "01234 56789", "", false},
		{"letters", "01234abcde", "", false},
		{"plus prefix", "+123456789", "", false},
		{"non-ASCII digits", "０１２３４５６７８９", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, contacts.ValidPhoneNumber(tt.raw))

			p, err := contacts.NewPhoneNumber(tt.raw)
			if !tt.valid {
				assert.ErrorIs(t, err, contacts.ErrInvalidPhoneFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestPhoneNumber_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("every ten-digit string is accepted", prop.ForAll(
		func(s string) bool {
			p, err := contacts.NewPhoneNumber(s)
			return err == nil && p.String() == s
		},
		gen.SliceOfN(10, gen.NumChar()).Map(func(r []rune) string { return string(r) }),
	))

	properties.Property("any other string is rejected", prop.ForAll(
		func(s string) bool {
			if tenDigits.MatchString(strings.TrimSpace(s)) {
				return true
			}
			_, err := contacts.NewPhoneNumber(s)
			return errors.Is(err, contacts.ErrInvalidPhoneFormat)
		},
		gen.AnyString(),
	))

	properties.Property("digit strings of the wrong length are rejected", prop.ForAll(
		func(s string) bool {
			if len(s) == 10 {
				return true
			}
			return !contacts.ValidPhoneNumber(s)
		},
		gen.NumString(),
	))

	properties.TestingRun(t)
}

func TestParseBirthday(t *testing.T) {
	tests := []struct {
		raw   string
		want  time.Time
		valid bool
	}{
		{"10.06.1990", time.Date(1990, time.June, 10, 0, 0, 0, 0, time.UTC), true},
		{"29.02.2024", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), true},
		{"31.12.1999", time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC), true},
		{"29.02.2023", time.Time{}, false}, // not a leap year
		{"31.04.2024", time.Time{}, false}, // 30-day month
		{"32.01.2024", time.Time{}, false},
		{"10.13.2024", time.Time{}, false},
		{"00.01.2024", time.Time{}, false},
		{"10/06/1990", time.Time{}, false},
		{"1990-06-10", time.Time{}, false},
		{"10.06", time.Time{}, false},
		{"10.06.1990.1", time.Time{}, false},
		{"aa.bb.cccc", time.Time{}, false},
		{" 10.06.1990", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			b, err := contacts.ParseBirthday(tt.raw)
			if !tt.valid {
				assert.ErrorIs(t, err, contacts.ErrInvalidDateFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Time())
			assert.Equal(t, tt.raw, b.String())
		})
	}
}

func TestBirthday_RoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("DD.MM.YYYY renders back unchanged", prop.ForAll(
		func(day, month, year int) bool {
			raw := fmt.Sprintf("%02d.%02d.%04d", day, month, year)
			b, err := contacts.ParseBirthday(raw)
			if err != nil {
				return false
			}
			again, err := contacts.ParseBirthday(b.String())
			return err == nil && b.String() == raw && again == b
		},
		gen.IntRange(1, 28),
		gen.IntRange(1, 12),
		gen.IntRange(1900, 2100),
	))

	properties.TestingRun(t)
}

package contacts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tartampluch/go-contacts/internal/config"
)

// Record is one contact. Its name is fixed at construction.
type Record struct {
	name     Name
	phones   []PhoneNumber
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name Name) *Record {
	return &Record{name: name}
}

func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []PhoneNumber {
	return slices.Clone(r.phones)
}

// AddPhone validates raw and appends it. Duplicates are kept.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhoneNumber(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// FindPhone returns the first stored phone equal to target.
func (r *Record) FindPhone(target string) (PhoneNumber, bool) {
	if i := r.indexOf(target); i >= 0 {
		return r.phones[i], true
	}
	return PhoneNumber{}, false
}

// RemovePhone drops the first phone equal to target. Absent numbers are ignored.
func (r *Record) RemovePhone(target string) {
	if i := r.indexOf(target); i >= 0 {
		r.phones = slices.Delete(r.phones, i, i+1)
	}
}

// EditPhone replaces old with newRaw. newRaw is validated before anything
// changes. When old is not stored the new number is still appended.
func (r *Record) EditPhone(old, newRaw string) error {
	p, err := NewPhoneNumber(newRaw)
	if err != nil {
		return err
	}
	r.RemovePhone(old)
	r.phones = append(r.phones, p)
	return nil
}

// SetBirthday overwrites any previous birthday.
func (r *Record) SetBirthday(b Birthday) {
	r.birthday = &b
}

// Birthday reports the birthday and whether one was set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}
	return fmt.Sprintf(config.RecordFormat, r.name, strings.Join(phones, config.PhoneJoin))
}

func (r *Record) indexOf(target string) int {
	return slices.IndexFunc(r.phones, func(p PhoneNumber) bool { return p.value == target })
}

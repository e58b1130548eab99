package engine

import (
	"fmt"
	"io"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

// EncodeDirectory writes every record as a vCard 4.0 in directory order.
func EncodeDirectory(w io.Writer, d *contacts.Directory) error {
	enc := vcard.NewEncoder(w)
	for _, r := range d.All() {
		if err := enc.Encode(recordToCard(r)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

func recordToCard(r *contacts.Record) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldFormattedName, r.Name().String())
	card.SetName(&vcard.Name{GivenName: r.Name().String()})

	for _, p := range r.Phones() {
		card.AddValue(vcard.FieldTelephone, p.String())
	}
	if b, ok := r.Birthday(); ok {
		card.SetValue(vcard.FieldBirthday, b.Time().Format(config.DateFormatFullBasic))
	}
	return card
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

// ImportStats summarizes one import run.
type ImportStats struct {
	Cards    int // cards decoded
	Imported int // cards merged into the directory
	Skipped  int // cards without a usable name or malformed
}

// Importer merges vCards from a local file or an HTTP(S) URL into a directory.
type Importer struct {
	Fetcher VCardFetcher
}

// Import reads source and merges each card into d: existing contacts keep
// their data and gain the card's valid phones, the card's birthday overwrites.
func (im *Importer) Import(ctx context.Context, source string, d *contacts.Directory) (ImportStats, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeySource, sanitizeSource(source),
	)

	reader, err := im.open(ctx, source)
	if err != nil {
		if ctx.Err() != nil {
			return ImportStats{}, ctx.Err()
		}
		return ImportStats{}, err
	}
	defer func() { _ = reader.Close() }()

	stats, err := mergeCards(ctx, reader, d)
	if err != nil {
		return stats, err
	}

	log.Info(config.MsgImportDone,
		config.LogKeyTotal, stats.Cards,
		config.LogKeyCount, stats.Imported,
		config.LogKeySkipped, stats.Skipped,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return stats, nil
}

func (im *Importer) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if source == "" {
		return nil, errors.New(config.ErrSourceEmpty)
	}

	u, err := url.Parse(source)
	if err != nil || (u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS) {
		return os.Open(source)
	}

	fetcher := im.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher()
	}

	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
		u.User = nil
	}
	return fetcher.Fetch(ctx, u.String(), user, pass)
}

func mergeCards(ctx context.Context, r io.Reader, d *contacts.Directory) (ImportStats, error) {
	var stats ImportStats
	decoder := vcard.NewDecoder(r)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken stream cannot be resynchronized; keep what was merged.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyError, err)
			stats.Skipped++
			return stats, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}
		stats.Cards++

		if mergeCard(card, d) {
			stats.Imported++
		} else {
			stats.Skipped++
		}
	}
	return stats, nil
}

// mergeCard applies one card using the find-or-create pattern.
func mergeCard(card vcard.Card, d *contacts.Directory) bool {
	name, err := contacts.NewName(cardName(card))
	if err != nil {
		slog.Debug(config.MsgSkippedName, config.LogKeyComponent, config.CompImporter)
		return false
	}

	record, ok := d.Find(name)
	if !ok {
		record = contacts.NewRecord(name)
		d.AddRecord(record)
	}

	for _, tel := range card.Values(vcard.FieldTelephone) {
		if err := record.AddPhone(normalizePhone(tel)); err != nil {
			slog.Debug(config.MsgSkippedPhone,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyName, name,
				config.LogKeyValue, tel)
		}
	}

	if bday := card.Value(vcard.FieldBirthday); bday != "" {
		b, err := parseDate(bday)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompImporter,
				config.LogKeyName, name,
				config.LogKeyValue, bday)
		} else {
			record.SetBirthday(b)
		}
	}
	return true
}

// cardName prefers FN, then the given, additional and family parts of N.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.Value(vcard.FieldFormattedName)); fn != "" {
		return fn
	}
	n := card.Name()
	if n == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{n.GivenName, n.AdditionalName, n.FamilyName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, config.NameSeparator)
}

// normalizePhone strips common separators so "012 345-67.89" can validate.
func normalizePhone(tel string) string {
	tel = strings.TrimPrefix(strings.TrimSpace(tel), "tel:")
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(config.PhoneSeparators, r) {
			return -1
		}
		return r
	}, tel)
}

// parseDate handles the vCard BDAY layouts that carry a year. Year-less
// dates (--MM-DD) are rejected since a Birthday always has one.
func parseDate(value string) (contacts.Birthday, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return contacts.NewBirthday(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return contacts.Birthday{}, errors.New(config.ErrDateParse)
}

// sanitizeSource strips credentials and query parameters before logging.
func sanitizeSource(source string) string {
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return source
	}
	return u.Scheme + "://" + u.Host + u.Path
}

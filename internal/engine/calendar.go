package engine

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
)

// CalendarWriter renders greetings as an iCalendar feed.
type CalendarWriter struct {
	// FormatSummary lets the session inject localized event titles.
	FormatSummary func(name string) string
}

// Encode writes one all-day event per greeting, dated on the greeting day.
// An empty list still produces a valid VCALENDAR.
func (c *CalendarWriter) Encode(w io.Writer, greetings []contacts.Greeting, now time.Time) error {
	if len(greetings) == 0 {
		_, err := io.WriteString(w, config.StubVCalendar)
		return err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Stamped at the day, not the instant, so an unchanged feed renders the same bytes.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(contacts.DateOf(now))

	for _, g := range greetings {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, greetingUID(g))
		event.Props.SetText(config.PropSummary, c.summary(g.Name.String()))

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(g.Date)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(greetings),
	)
	return nil
}

func (c *CalendarWriter) summary(name string) string {
	if c.FormatSummary != nil {
		return c.FormatSummary(name)
	}
	return fmt.Sprintf(config.FallbackSummary, name)
}

// greetingUID is stable across renders of the same contact, birthday and year.
func greetingUID(g contacts.Greeting) string {
	input := fmt.Sprintf(config.FormatHashInput, g.Name, g.Birthday, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), g.Date.Year(), config.ICalDomain)
}

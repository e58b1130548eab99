package engine_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contacts/internal/config"
	"github.com/tartampluch/go-contacts/internal/contacts"
	"github.com/tartampluch/go-contacts/internal/engine"
)

func greetingsFor(t *testing.T, today time.Time, pairs ...string) []contacts.Greeting {
	t.Helper()
	d := contacts.NewDirectory()
	for i := 0; i < len(pairs); i += 2 {
		r := contacts.NewRecord(contacts.Name(pairs[i]))
		b, err := contacts.ParseBirthday(pairs[i+1])
		require.NoError(t, err)
		r.SetBirthday(b)
		d.AddRecord(r)
	}
	return d.UpcomingBirthdays(today, 7)
}

func TestCalendarWriter_Encode(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	greetings := greetingsFor(t, now, "John Doe", "15.06.1990", "Jane", "12.06.1985")
	require.Len(t, greetings, 2)

	var buf bytes.Buffer
	w := &engine.CalendarWriter{}
	require.NoError(t, w.Encode(&buf, greetings, now))

	ics := buf.String()
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "SUMMARY:Birthday: John Doe")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240617", "Saturday birthday is greeted on Monday")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240612")

	cal, err := ical.NewDecoder(strings.NewReader(ics)).Decode()
	require.NoError(t, err, "Output must be parseable iCalendar")
	assert.Len(t, cal.Events(), 2)
}

func TestCalendarWriter_LocalizedSummary(t *testing.T) {
	now := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	greetings := greetingsFor(t, now, "Marie", "12.06.1985")

	var buf bytes.Buffer
	w := &engine.CalendarWriter{FormatSummary: func(name string) string { return "Anniversaire : " + name }}
	require.NoError(t, w.Encode(&buf, greetings, now))

	assert.Contains(t, buf.String(), "Anniversaire : Marie")
}

func TestCalendarWriter_StableUID(t *testing.T) {
	now := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	greetings := greetingsFor(t, now, "John", "12.06.1985")
	w := &engine.CalendarWriter{}

	var first, second bytes.Buffer
	require.NoError(t, w.Encode(&first, greetings, now))
	require.NoError(t, w.Encode(&second, greetings, now.Add(time.Hour)))

	uid := func(s string) string {
		for _, line := range strings.Split(s, "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}
	require.NotEmpty(t, uid(first.String()))
	assert.Equal(t, uid(first.String()), uid(second.String()))
	assert.Contains(t, uid(first.String()), "-2024@"+config.ICalDomain)
}

func TestCalendarWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	w := &engine.CalendarWriter{}
	require.NoError(t, w.Encode(&buf, nil, time.Now()))

	assert.Equal(t, config.StubVCalendar, buf.String())
}

func TestCalendarWriter_SameDayIsByteIdentical(t *testing.T) {
	morning := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	greetings := greetingsFor(t, morning, "John", "12.06.1985")
	w := &engine.CalendarWriter{}

	var first, second, nextDay bytes.Buffer
	require.NoError(t, w.Encode(&first, greetings, morning))
	require.NoError(t, w.Encode(&second, greetings, morning.Add(9*time.Hour+17*time.Minute)))
	require.NoError(t, w.Encode(&nextDay, greetings, morning.AddDate(0, 0, 1)))

	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), "DTSTAMP:20240610T000000Z")
	assert.NotEqual(t, first.String(), nextDay.String())
}

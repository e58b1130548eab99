package contacts

import "time"

// hoursPerDay converts a midnight-to-midnight duration into whole days.
const hoursPerDay = 24

// Greeting is a contact to congratulate and the working day to do it on.
type Greeting struct {
	Name     Name
	Birthday Birthday
	Date     time.Time
}

// UpcomingBirthdays lists the contacts whose next birthday falls strictly
// after today and at most days ahead. Weekend birthdays are greeted on the
// following Monday. Results follow directory order.
func (d *Directory) UpcomingBirthdays(today time.Time, days int) []Greeting {
	today = DateOf(today)

	var greetings []Greeting
	for _, r := range d.All() {
		b, ok := r.Birthday()
		if !ok {
			continue
		}

		occurrence := NextOccurrence(today, b)
		delta := int(occurrence.Sub(today).Hours()) / hoursPerDay
		if delta <= 0 || delta > days {
			continue
		}

		greetings = append(greetings, Greeting{
			Name:     r.name,
			Birthday: b,
			Date:     AdjustForWeekend(occurrence),
		})
	}
	return greetings
}

// NextOccurrence maps b onto today's year, or the next one when that date
// has already passed. Feb 29 becomes Mar 1 in a non-leap year.
func NextOccurrence(today time.Time, b Birthday) time.Time {
	today = DateOf(today)
	month, day := b.date.Month(), b.date.Day()

	occurrence := time.Date(today.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if occurrence.Before(today) {
		occurrence = time.Date(today.Year()+1, month, day, 0, 0, 0, 0, time.UTC)
	}
	return occurrence
}

// AdjustForWeekend moves a Saturday or Sunday to the next Monday.
func AdjustForWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return NextWeekday(d, time.Monday)
	default:
		return d
	}
}

// NextWeekday returns the first date strictly after d that falls on target.
func NextWeekday(d time.Time, target time.Weekday) time.Time {
	ahead := (int(target) - int(d.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return d.AddDate(0, 0, ahead)
}

// DateOf drops the clock and location of t, keeping its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

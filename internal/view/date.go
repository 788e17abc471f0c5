package view

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day with no time-of-day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Layouts accepted by ParseDate. The first is what the date input shows.
const (
	DisplayDateLayout = "02/01/2006"
	isoDateLayout     = "2006-01-02"
)

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate reads a day written as dd/mm/yyyy or yyyy-mm-dd.
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, fmt.Errorf("date is empty")
	}
	for _, layout := range []string{DisplayDateLayout, isoDateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q (want dd/mm/yyyy)", value)
}

// Equal reports whether both values name the same day.
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// String formats the day as dd/mm/yyyy.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// ISO formats the day as yyyy-mm-dd.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

package view

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/five82/quayside/internal/containers"
)

// Matches reports whether r satisfies both the text query and the date
// filter. An empty query and a nil date each match everything.
func Matches(r containers.Record, query string, date *Date) bool {
	return matchesQuery(r, query) && matchesDate(r, date)
}

// matchesQuery is a case-insensitive substring test over the searchable
// fields. Carrier and transhipment are not searched. Both sides are
// lowercased rather than case-folded, so "ss" does not match "ß".
func matchesQuery(r containers.Record, query string) bool {
	if query == "" {
		return true
	}
	lower := cases.Lower(language.Und)
	needle := lower.String(query)
	for _, field := range searchableFields(r) {
		if strings.Contains(lower.String(field), needle) {
			return true
		}
	}
	return false
}

func matchesDate(r containers.Record, date *Date) bool {
	if date == nil {
		return true
	}
	return DateOf(r.Departure).Equal(*date)
}

func searchableFields(r containers.Record) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Agency,
		r.LoadPort,
		r.DeliverPort,
		r.DischargePort,
		r.Booking,
	}
}

package query

import (
	"fmt"
	"strings"
	"time"

	"jobtrack-engine/internal/domain"
)

// DateRange is a relative bucket applied to applicationDate.
type DateRange string

const (
	RangeAny         DateRange = ""
	RangeToday       DateRange = "today"
	RangeLast7Days   DateRange = "last-7-days"
	RangeLast30Days  DateRange = "last-30-days"
	RangeThisMonth   DateRange = "this-month"
	RangeThisQuarter DateRange = "this-quarter"
	RangeThisYear    DateRange = "this-year"
)

func (r DateRange) Valid() bool {
	switch r {
	case RangeAny, RangeToday, RangeLast7Days, RangeLast30Days,
		RangeThisMonth, RangeThisQuarter, RangeThisYear:
		return true
	}
	return false
}

// Contains reports whether the calendar date d falls inside the bucket,
// evaluated against now's calendar day.
func (r DateRange) Contains(d, now time.Time) bool {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	switch r {
	case RangeAny:
		return true
	case RangeToday:
		return d.Equal(day)
	case RangeLast7Days:
		return !d.After(day) && d.After(day.AddDate(0, 0, -7))
	case RangeLast30Days:
		return !d.After(day) && d.After(day.AddDate(0, 0, -30))
	case RangeThisMonth:
		return d.Year() == day.Year() && d.Month() == day.Month()
	case RangeThisQuarter:
		return d.Year() == day.Year() && (int(d.Month())-1)/3 == (int(day.Month())-1)/3
	case RangeThisYear:
		return d.Year() == day.Year()
	}
	return false
}

// Criteria are ANDed; zero values are pass-through.
type Criteria struct {
	Text   string        // case-insensitive substring over title/company/location/notes
	Status domain.Status // exact match
	Range  DateRange     // relative bucket on applicationDate
}

type SortField string

const (
	SortByDate    SortField = "date"
	SortByCompany SortField = "company"
	SortByStatus  SortField = "status"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Options is one full pipeline invocation: filter, then sort, then page.
type Options struct {
	Criteria Criteria
	Sort     SortField
	Order    Direction
	Limit    int // <= 0 means everything
	Offset   int
}

// Normalize maps aliases and fills defaults. Sort whitelist mirrors the
// record fields the UI exposes; anything unknown falls back to date.
func (o Options) Normalize() Options {
	out := o
	out.Criteria.Text = strings.TrimSpace(out.Criteria.Text)

	switch strings.ToLower(string(out.Sort)) {
	case "date", "applicationdate", "application_date":
		out.Sort = SortByDate
	case "company", "companyname", "company_name":
		out.Sort = SortByCompany
	case "status":
		out.Sort = SortByStatus
	default:
		out.Sort = SortByDate
	}

	switch strings.ToLower(string(out.Order)) {
	case "asc":
		out.Order = Asc
	case "desc":
		out.Order = Desc
	default:
		if out.Sort == SortByDate {
			out.Order = Desc
		} else {
			out.Order = Asc
		}
	}

	if !out.Criteria.Range.Valid() {
		out.Criteria.Range = RangeAny
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	return out
}

// Key is the canonical serialized value of the options. Two Options that
// mean the same derivation produce the same key; the cache compares by
// this, never by reference.
func (o Options) Key() string {
	return fmt.Sprintf("q=%s|status=%s|range=%s|sort=%s|order=%s|limit=%d|offset=%d",
		strings.ToLower(o.Criteria.Text), o.Criteria.Status, o.Criteria.Range,
		o.Sort, o.Order, o.Limit, o.Offset)
}

// Package query derives display-ready sequences from the full record set:
// filter, stable sort, paginate. Full recompute each time; the only state
// is the explicit memo cache in cache.go.
package query

import (
	"sort"
	"strings"
	"time"

	"jobtrack-engine/internal/domain"
)

// Result is the pagination envelope handed to the UI.
type Result struct {
	Items   []domain.Application `json:"items"`
	Total   int                  `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
	HasMore bool                 `json:"hasMore"`
}

// Filter keeps records satisfying every active criterion. A record with a
// missing or unparseable applicationDate is excluded only when a date
// bucket is active.
func Filter(records []domain.Application, c Criteria, now time.Time) []domain.Application {
	text := strings.ToLower(strings.TrimSpace(c.Text))

	out := make([]domain.Application, 0, len(records))
	for _, a := range records {
		if text != "" && !matchesText(a, text) {
			continue
		}
		if c.Status != "" && a.Status != c.Status {
			continue
		}
		if c.Range != RangeAny {
			d, ok := a.AppliedOn()
			if !ok || !c.Range.Contains(d, now) {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func matchesText(a domain.Application, lowered string) bool {
	for _, f := range []string{a.JobTitle, a.CompanyName, a.Location, a.Notes} {
		if f != "" && strings.Contains(strings.ToLower(f), lowered) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy; input order breaks ties (stable). Status
// sorts by its fixed rank, not alphabetically.
func Sort(records []domain.Application, field SortField, dir Direction) []domain.Application {
	out := make([]domain.Application, len(records))
	copy(out, records)

	var less func(i, j int) bool
	switch field {
	case SortByCompany:
		less = func(i, j int) bool {
			return strings.ToLower(out[i].CompanyName) < strings.ToLower(out[j].CompanyName)
		}
	case SortByStatus:
		less = func(i, j int) bool {
			return out[i].Status.Rank() < out[j].Status.Rank()
		}
	default:
		// YYYY-MM-DD compares correctly as a string; absent dates sort
		// first ascending.
		less = func(i, j int) bool {
			return out[i].ApplicationDate < out[j].ApplicationDate
		}
	}

	if dir == Desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}

	sort.SliceStable(out, less)
	return out
}

// Paginate slices the sorted set. limit <= 0 returns everything.
func Paginate(records []domain.Application, limit, offset int) Result {
	total := len(records)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}

	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	return Result{
		Items:   records[offset:end],
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: end < total,
	}
}

// Apply runs the whole pipeline. Pure: same records, options and clock
// day give the same result.
func Apply(records []domain.Application, opts Options, now time.Time) Result {
	opts = opts.Normalize()
	filtered := Filter(records, opts.Criteria, now)
	sorted := Sort(filtered, opts.Sort, opts.Order)
	return Paginate(sorted, opts.Limit, opts.Offset)
}

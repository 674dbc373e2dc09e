// Package filter narrows job records with composable predicates.
//
// Each criterion is a Predicate built by one of the By* constructors.
// Predicates are pure: they hold only the values they were built with and
// may be evaluated in any order, from any goroutine. Apply combines a list
// of them as a conjunction.
//
// Blank text criteria (ByCountry(""), ByCompany("  ")) match every record.
package filter

import (
	"strings"
	"time"

	"jobplanner/internal/models"

	"golang.org/x/text/cases"
)

// Predicate reports whether a record satisfies one criterion.
type Predicate func(models.JobRecord) bool

// Apply returns the records that satisfy every predicate, in input order.
// With no predicates the input slice itself is returned.
func Apply(records []models.JobRecord, predicates ...Predicate) []models.JobRecord {
	if len(predicates) == 0 {
		return records
	}

	matched := make([]models.JobRecord, 0, len(records))
	for _, record := range records {
		if matchesAll(record, predicates) {
			matched = append(matched, record)
		}
	}
	return matched
}

// All folds predicates into one with logical AND. All() matches everything.
func All(predicates ...Predicate) Predicate {
	ps := make([]Predicate, len(predicates))
	copy(ps, predicates)
	return func(record models.JobRecord) bool {
		return matchesAll(record, ps)
	}
}

func matchesAll(record models.JobRecord, predicates []Predicate) bool {
	for _, p := range predicates {
		if !p(record) {
			return false
		}
	}
	return true
}

func matchAll(models.JobRecord) bool { return true }

// fold returns the Unicode case-folded form of s. A Caser is stateful, so
// every call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// ByCountry matches records whose location area contains country,
// compared case-insensitively.
func ByCountry(country string) Predicate {
	want := fold(strings.TrimSpace(country))
	if want == "" {
		return matchAll
	}
	return func(record models.JobRecord) bool {
		for _, area := range record.Areas() {
			if fold(strings.TrimSpace(area)) == want {
				return true
			}
		}
		return false
	}
}

// ByCategory matches records tagged exactly with code.
func ByCategory(code models.CategoryCode) Predicate {
	want := string(code)
	return func(record models.JobRecord) bool {
		return record.CategoryTag() == want
	}
}

// ByCompany matches records whose company name contains substring,
// compared case-insensitively.
func ByCompany(substring string) Predicate {
	want := fold(strings.TrimSpace(substring))
	if want == "" {
		return matchAll
	}
	return func(record models.JobRecord) bool {
		return strings.Contains(fold(record.CompanyName()), want)
	}
}

// BySalaryRange matches records whose [SalaryMin, SalaryMax] interval
// overlaps [min, max]. Bounds are used as given: an inverted query is not
// swapped, and NaN bounds match nothing.
func BySalaryRange(min, max float64) Predicate {
	return func(record models.JobRecord) bool {
		return record.SalaryMin <= max && record.SalaryMax >= min
	}
}

// ByRoleType matches records whose contract time equals any of roleTypes,
// ignoring case.
func ByRoleType(roleTypes ...string) Predicate {
	wanted := make(map[string]struct{}, len(roleTypes))
	for _, rt := range roleTypes {
		wanted[fold(strings.TrimSpace(rt))] = struct{}{}
	}
	return func(record models.JobRecord) bool {
		if record.ContractTime == "" {
			return false
		}
		_, ok := wanted[fold(strings.TrimSpace(record.ContractTime))]
		return ok
	}
}

// ByDatePosted matches records created on a calendar day between start
// and end, both inclusive. Time of day is ignored on all three values.
// Records whose created value cannot be parsed never match.
func ByDatePosted(start, end time.Time) Predicate {
	from, to := dayOf(start), dayOf(end)
	return func(record models.JobRecord) bool {
		created, err := ParseDate(record.Created)
		if err != nil {
			return false
		}
		day := dayOf(created)
		return day >= from && day <= to
	}
}

package filter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"jobplanner/internal/models"

	"github.com/go-playground/validator/v10"
)

// placeholder is the value selection widgets report when nothing is chosen.
const placeholder = "Select"

var validate = validator.New()

// Criteria is user-facing filter input. Blank fields are skipped when
// building predicates.
type Criteria struct {
	Country    string     `json:"country,omitempty" yaml:"country"`
	Category   string     `json:"category,omitempty" yaml:"category"`
	Company    string     `json:"company,omitempty" yaml:"company"`
	SalaryMin  *float64   `json:"salary_min,omitempty" yaml:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax  *float64   `json:"salary_max,omitempty" yaml:"salary_max" validate:"omitempty,gte=0"`
	RoleTypes  []string   `json:"role_types,omitempty" yaml:"role_types" validate:"dive,required"`
	Window     DateWindow `json:"window,omitempty" yaml:"window" validate:"omitempty,oneof=today week month"`
	PostedFrom string     `json:"posted_from,omitempty" yaml:"posted_from"`
	PostedTo   string     `json:"posted_to,omitempty" yaml:"posted_to"`
}

func isSet(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != placeholder
}

// IsEmpty reports whether no criterion is set.
func (c Criteria) IsEmpty() bool {
	return !isSet(c.Country) &&
		!isSet(c.Category) &&
		!isSet(c.Company) &&
		c.SalaryMin == nil &&
		c.SalaryMax == nil &&
		len(c.RoleTypes) == 0 &&
		c.Window == WindowNone &&
		!isSet(c.PostedFrom) &&
		!isSet(c.PostedTo)
}

// Validate rejects NaN or inverted salary bounds (*RangeError), values
// failing the struct tags (validator.ValidationErrors), malformed dates
// (*ParseError) and inverted date bounds (*RangeError).
func (c Criteria) Validate() error {
	if err := c.checkSalary(); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return err
	}
	_, _, err := c.postedBounds()
	return err
}

func (c Criteria) checkSalary() error {
	min, max := c.salaryBounds()
	if math.IsNaN(min) || math.IsNaN(max) {
		return &RangeError{Field: "salary", Min: formatBound(min), Max: formatBound(max), Msg: "bound is not a number"}
	}
	if min > max {
		return &RangeError{Field: "salary", Min: formatBound(min), Max: formatBound(max), Msg: "min is greater than max"}
	}
	return nil
}

// salaryBounds fills a missing bound with an open end.
func (c Criteria) salaryBounds() (float64, float64) {
	min, max := 0.0, math.Inf(1)
	if c.SalaryMin != nil {
		min = *c.SalaryMin
	}
	if c.SalaryMax != nil {
		max = *c.SalaryMax
	}
	return min, max
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// postedBounds parses explicit date input. A missing bound is open; when
// neither is set both results are zero.
func (c Criteria) postedBounds() (start, end time.Time, err error) {
	if !isSet(c.PostedFrom) && !isSet(c.PostedTo) {
		return time.Time{}, time.Time{}, nil
	}

	start = time.Time{}
	end = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

	if isSet(c.PostedFrom) {
		if start, err = ParseDate(c.PostedFrom); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if isSet(c.PostedTo) {
		if end, err = ParseDate(c.PostedTo); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if dayOf(start) > dayOf(end) {
		return time.Time{}, time.Time{}, &RangeError{
			Field: "posted date",
			Min:   start.Format(DateLayout),
			Max:   end.Format(DateLayout),
			Msg:   "start is after end",
		}
	}
	return start, end, nil
}

// Predicates validates c and builds one predicate per set criterion.
// Explicit posted dates take precedence over the date window, which is
// resolved against now.
func (c Criteria) Predicates(now time.Time) ([]Predicate, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var predicates []Predicate

	if isSet(c.Country) {
		predicates = append(predicates, ByCountry(c.Country))
	}
	if isSet(c.Category) {
		predicates = append(predicates, ByCategory(models.CategoryFromString(c.Category)))
	}
	if isSet(c.Company) {
		predicates = append(predicates, ByCompany(c.Company))
	}
	if c.SalaryMin != nil || c.SalaryMax != nil {
		min, max := c.salaryBounds()
		predicates = append(predicates, BySalaryRange(min, max))
	}
	if len(c.RoleTypes) > 0 {
		predicates = append(predicates, ByRoleType(c.RoleTypes...))
	}

	if isSet(c.PostedFrom) || isSet(c.PostedTo) {
		start, end, _ := c.postedBounds()
		predicates = append(predicates, ByDatePosted(start, end))
	} else if start, end, ok := c.Window.Range(now); ok {
		predicates = append(predicates, ByDatePosted(start, end))
	}

	return predicates, nil
}

// Filter applies c to records, resolving date windows against now.
func (c Criteria) Filter(records []models.JobRecord, now time.Time) ([]models.JobRecord, error) {
	predicates, err := c.Predicates(now)
	if err != nil {
		return nil, err
	}
	return Apply(records, predicates...), nil
}

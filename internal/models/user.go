package models

import "time"

type User struct {
	ID        int64     `db:"id"`
	Username  *string   `db:"username"`
	FirstName *string   `db:"first_name"`
	LastName  *string   `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
}

type UserFilter struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	FilterType  string    `db:"filter_type"`  // country, category, company, salary_min, salary_max, role_type, period
	FilterValue string    `db:"filter_value"` // role_type holds a comma separated list
	CreatedAt   time.Time `db:"created_at"`
}

type SavedJob struct {
	UserID  int64     `db:"user_id"`
	JobID   string    `db:"job_id"`
	SavedAt time.Time `db:"saved_at"`
}

const (
	FilterTypeCountry   = "country"
	FilterTypeCategory  = "category"
	FilterTypeCompany   = "company"
	FilterTypeSalaryMin = "salary_min"
	FilterTypeSalaryMax = "salary_max"
	FilterTypeRoleType  = "role_type"
	FilterTypePeriod    = "period"
)

// FilterTypes lists the filter types in the order they are shown.
var FilterTypes = []string{
	FilterTypeCountry,
	FilterTypeCategory,
	FilterTypeCompany,
	FilterTypeSalaryMin,
	FilterTypeSalaryMax,
	FilterTypeRoleType,
	FilterTypePeriod,
}

func IsValidFilterType(filterType string) bool {
	for _, t := range FilterTypes {
		if t == filterType {
			return true
		}
	}
	return false
}

package models

// JobRecord is one posting from the catalog. Records are built once at load
// time and only read afterwards.
//
// Field order matters: encoders emit fields in declaration order.
// Empty strings, nil nested values and zero numbers mean "absent".
type JobRecord struct {
	Title             string    `json:"title,omitempty"`
	Description       string    `json:"description,omitempty"`
	Company           *Company  `json:"company,omitempty"`
	Location          *Location `json:"location,omitempty"`
	SalaryMin         float64   `json:"salary_min,omitempty"`
	SalaryMax         float64   `json:"salary_max,omitempty"`
	ContractTime      string    `json:"contract_time,omitempty"`
	Created           string    `json:"created,omitempty"`
	RedirectURL       string    `json:"redirect_url,omitempty"`
	Adref             string    `json:"adref,omitempty"`
	Category          *Category `json:"category,omitempty"`
	Latitude          float64   `json:"latitude,omitempty"`
	Longitude         float64   `json:"longitude,omitempty"`
	ID                string    `json:"id,omitempty"`
	SalaryIsPredicted string    `json:"salary_is_predicted,omitempty"`
}

type Company struct {
	DisplayName string `json:"display_name,omitempty"`
}

// Location area runs from broad to narrow, e.g. ["UK", "London", "Camden"].
type Location struct {
	DisplayName string   `json:"display_name,omitempty"`
	Area        []string `json:"area,omitempty"`
}

type Category struct {
	Tag   string `json:"tag,omitempty"`
	Label string `json:"label,omitempty"`
}

// Canonical field names, in export order.
const (
	FieldTitle             = "title"
	FieldDescription       = "description"
	FieldCompany           = "company"
	FieldLocation          = "location"
	FieldSalaryMin         = "salary_min"
	FieldSalaryMax         = "salary_max"
	FieldContractTime      = "contract_time"
	FieldCreated           = "created"
	FieldRedirectURL       = "redirect_url"
	FieldAdref             = "adref"
	FieldCategory          = "category"
	FieldLatitude          = "latitude"
	FieldLongitude         = "longitude"
	FieldID                = "id"
	FieldSalaryIsPredicted = "salary_is_predicted"
)

// FieldOrder is the order every export format follows.
var FieldOrder = []string{
	FieldTitle,
	FieldDescription,
	FieldCompany,
	FieldLocation,
	FieldSalaryMin,
	FieldSalaryMax,
	FieldContractTime,
	FieldCreated,
	FieldRedirectURL,
	FieldAdref,
	FieldCategory,
	FieldLatitude,
	FieldLongitude,
	FieldID,
	FieldSalaryIsPredicted,
}

func (j JobRecord) CompanyName() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.DisplayName
}

func (j JobRecord) LocationName() string {
	if j.Location == nil {
		return ""
	}
	return j.Location.DisplayName
}

func (j JobRecord) Areas() []string {
	if j.Location == nil {
		return nil
	}
	return j.Location.Area
}

func (j JobRecord) CategoryTag() string {
	if j.Category == nil {
		return ""
	}
	return j.Category.Tag
}

// CategoryLabel falls back to the tag when the label is missing.
func (j JobRecord) CategoryLabel() string {
	if j.Category == nil {
		return ""
	}
	if j.Category.Label != "" {
		return j.Category.Label
	}
	return j.Category.Tag
}

// Compact returns j with empty nested values set to nil, so they read and
// encode as absent.
func (j JobRecord) Compact() JobRecord {
	if j.Company != nil && *j.Company == (Company{}) {
		j.Company = nil
	}
	if j.Location != nil && j.Location.DisplayName == "" && len(j.Location.Area) == 0 {
		j.Location = nil
	}
	if j.Category != nil && *j.Category == (Category{}) {
		j.Category = nil
	}
	return j
}

// HasSalary reports whether either salary bound is populated.
func (j JobRecord) HasSalary() bool {
	return j.SalaryMin != 0 || j.SalaryMax != 0
}

// IndexByID maps record IDs to their position in jobs. Later duplicates
// are ignored.
func IndexByID(jobs []JobRecord) map[string]int {
	index := make(map[string]int, len(jobs))
	for i, job := range jobs {
		if _, ok := index[job.ID]; !ok {
			index[job.ID] = i
		}
	}
	return index
}

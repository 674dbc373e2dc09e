package models

import (
	"strings"

	"golang.org/x/text/cases"
)

// CategoryCode is a job-board category tag, the value found in
// JobRecord.Category.Tag.
type CategoryCode string

const (
	CategoryAccountingFinance    CategoryCode = "accounting-finance-jobs"
	CategoryIT                   CategoryCode = "it-jobs"
	CategorySales                CategoryCode = "sales-jobs"
	CategoryCustomerServices     CategoryCode = "customer-services-jobs"
	CategoryEngineering          CategoryCode = "engineering-jobs"
	CategoryHR                   CategoryCode = "hr-jobs"
	CategoryHealthcareNursing    CategoryCode = "healthcare-nursing-jobs"
	CategoryHospitalityCatering  CategoryCode = "hospitality-catering-jobs"
	CategoryMarketing            CategoryCode = "pr-advertising-marketing-jobs"
	CategoryLogisticsWarehouse   CategoryCode = "logistics-warehouse-jobs"
	CategoryTeaching             CategoryCode = "teaching-jobs"
	CategoryTradeConstruction    CategoryCode = "trade-construction-jobs"
	CategoryAdmin                CategoryCode = "admin-jobs"
	CategoryLegal                CategoryCode = "legal-jobs"
	CategoryCreativeDesign       CategoryCode = "creative-design-jobs"
	CategoryGraduate             CategoryCode = "graduate-jobs"
	CategoryRetail               CategoryCode = "retail-jobs"
	CategoryConsultancy          CategoryCode = "consultancy-jobs"
	CategoryManufacturing        CategoryCode = "manufacturing-jobs"
	CategoryScientificQA         CategoryCode = "scientific-qa-jobs"
	CategorySocialWork           CategoryCode = "social-work-jobs"
	CategoryTravel               CategoryCode = "travel-jobs"
	CategoryEnergyOilGas         CategoryCode = "energy-oil-gas-jobs"
	CategoryProperty             CategoryCode = "property-jobs"
	CategoryCharityVoluntary     CategoryCode = "charity-voluntary-jobs"
	CategoryDomesticHelpCleaning CategoryCode = "domestic-help-cleaning-jobs"
	CategoryMaintenance          CategoryCode = "maintenance-jobs"
	CategoryPartTime             CategoryCode = "part-time-jobs"
	CategoryOtherGeneral         CategoryCode = "other-general-jobs"

	// CategoryUnknown is returned for labels outside the vocabulary.
	CategoryUnknown CategoryCode = "unknown"
)

var categoryDisplayNames = map[CategoryCode]string{
	CategoryAccountingFinance:    "Accounting & Finance Jobs",
	CategoryIT:                   "IT Jobs",
	CategorySales:                "Sales Jobs",
	CategoryCustomerServices:     "Customer Services Jobs",
	CategoryEngineering:          "Engineering Jobs",
	CategoryHR:                   "HR & Recruitment Jobs",
	CategoryHealthcareNursing:    "Healthcare & Nursing Jobs",
	CategoryHospitalityCatering:  "Hospitality & Catering Jobs",
	CategoryMarketing:            "PR, Advertising & Marketing Jobs",
	CategoryLogisticsWarehouse:   "Logistics & Warehouse Jobs",
	CategoryTeaching:             "Teaching Jobs",
	CategoryTradeConstruction:    "Trade & Construction Jobs",
	CategoryAdmin:                "Admin Jobs",
	CategoryLegal:                "Legal Jobs",
	CategoryCreativeDesign:       "Creative & Design Jobs",
	CategoryGraduate:             "Graduate Jobs",
	CategoryRetail:               "Retail Jobs",
	CategoryConsultancy:          "Consultancy Jobs",
	CategoryManufacturing:        "Manufacturing Jobs",
	CategoryScientificQA:         "Scientific & QA Jobs",
	CategorySocialWork:           "Social work Jobs",
	CategoryTravel:               "Travel Jobs",
	CategoryEnergyOilGas:         "Energy, Oil & Gas Jobs",
	CategoryProperty:             "Property Jobs",
	CategoryCharityVoluntary:     "Charity & Voluntary Jobs",
	CategoryDomesticHelpCleaning: "Domestic help & Cleaning Jobs",
	CategoryMaintenance:          "Maintenance Jobs",
	CategoryPartTime:             "Part time Jobs",
	CategoryOtherGeneral:         "Other/General Jobs",
	CategoryUnknown:              "Unknown",
}

var categoryOrder = []CategoryCode{
	CategoryIT,
	CategoryEngineering,
	CategoryAccountingFinance,
	CategorySales,
	CategoryCustomerServices,
	CategoryHR,
	CategoryHealthcareNursing,
	CategoryHospitalityCatering,
	CategoryMarketing,
	CategoryLogisticsWarehouse,
	CategoryTeaching,
	CategoryTradeConstruction,
	CategoryAdmin,
	CategoryLegal,
	CategoryCreativeDesign,
	CategoryGraduate,
	CategoryRetail,
	CategoryConsultancy,
	CategoryManufacturing,
	CategoryScientificQA,
	CategorySocialWork,
	CategoryTravel,
	CategoryEnergyOilGas,
	CategoryProperty,
	CategoryCharityVoluntary,
	CategoryDomesticHelpCleaning,
	CategoryMaintenance,
	CategoryPartTime,
	CategoryOtherGeneral,
}

// categoryMapping holds both normalized display names and normalized codes.
var categoryMapping = buildCategoryMapping()

func buildCategoryMapping() map[string]CategoryCode {
	m := make(map[string]CategoryCode, 2*len(categoryDisplayNames))
	for code, name := range categoryDisplayNames {
		if code == CategoryUnknown {
			continue
		}
		m[normalizeCategory(name)] = code
		m[normalizeCategory(string(code))] = code
	}
	return m
}

// normalizeCategory folds case and treats spaces, underscores and hyphens
// as the same separator: "IT_JOBS", "it-jobs" and "It  Jobs" all become
// "it jobs".
func normalizeCategory(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	parts := strings.FieldsFunc(folded, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '\t'
	})
	return strings.Join(parts, " ")
}

// CategoryFromString maps a free-text label or tag to its code. Unknown
// input yields CategoryUnknown rather than an error.
func CategoryFromString(label string) CategoryCode {
	if code, ok := categoryMapping[normalizeCategory(label)]; ok {
		return code
	}
	return CategoryUnknown
}

// Categories returns the vocabulary in display order, without the
// unknown sentinel.
func Categories() []CategoryCode {
	out := make([]CategoryCode, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

func CategoryOptions() []string {
	options := make([]string, len(categoryOrder))
	for i, code := range categoryOrder {
		options[i] = code.Label()
	}
	return options
}

func IsValidCategory(text string) bool {
	return CategoryFromString(text).IsKnown()
}

func (c CategoryCode) Label() string {
	if name, ok := categoryDisplayNames[c]; ok {
		return name
	}
	return string(c)
}

func (c CategoryCode) IsKnown() bool {
	_, ok := categoryDisplayNames[c]
	return ok && c != CategoryUnknown
}

func (c CategoryCode) String() string {
	return string(c)
}

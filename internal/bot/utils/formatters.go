package utils

import (
	"fmt"
	"strconv"
	"strings"

	"jobplanner/internal/filter"
	"jobplanner/internal/models"
)

const descriptionPreviewLen = 300

// FormatJob renders a job card in MarkdownV2.
func FormatJob(job models.JobRecord) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*\n\n", EscapeMarkdown(job.Title)))

	if name := job.CompanyName(); name != "" {
		sb.WriteString(fmt.Sprintf("🏢 *Company:* %s\n", EscapeMarkdown(name)))
	}

	if location := job.LocationName(); location != "" {
		sb.WriteString(fmt.Sprintf("📍 *Location:* %s\n", EscapeMarkdown(location)))
	}

	sb.WriteString(fmt.Sprintf("💰 *Salary:* %s\n", EscapeMarkdown(FormatSalary(job))))

	if job.ContractTime != "" {
		sb.WriteString(fmt.Sprintf("💼 *Role:* %s\n", EscapeMarkdown(models.GetRoleTypeDisplayName(job.ContractTime))))
	}

	if label := job.CategoryLabel(); label != "" {
		sb.WriteString(fmt.Sprintf("🗂 *Category:* %s\n", EscapeMarkdown(label)))
	}

	if created, err := filter.ParseDate(job.Created); err == nil {
		sb.WriteString(fmt.Sprintf("📅 *Posted:* %s\n", EscapeMarkdown(created.Format("02 Jan 2006"))))
	}

	if job.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(EscapeMarkdown(TruncateString(job.Description, descriptionPreviewLen)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatSalary renders the salary range; predicted salaries are marked.
func FormatSalary(job models.JobRecord) string {
	var s string
	switch {
	case job.SalaryMin != 0 && job.SalaryMax != 0 && job.SalaryMin != job.SalaryMax:
		s = fmt.Sprintf("%s - %s", formatAmount(job.SalaryMin), formatAmount(job.SalaryMax))
	case job.SalaryMin != 0:
		s = formatAmount(job.SalaryMin)
	case job.SalaryMax != 0:
		s = "up to " + formatAmount(job.SalaryMax)
	default:
		return "not specified"
	}

	if job.SalaryIsPredicted == "1" {
		s += " (estimated)"
	}
	return s
}

// formatAmount groups thousands: 45000 -> "45,000".
func formatAmount(v float64) string {
	digits := strconv.FormatFloat(v, 'f', 0, 64)

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sign + sb.String()
}

func FormatJobsSummary(total, page, pages int) string {
	return fmt.Sprintf("📋 *Jobs found:* %d\n*Page:* %d of %d", total, page+1, pages)
}

func FormatWelcomeMessage(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf(`👋 Hi, *%s*\!

I help you browse the job catalog, narrow it down and keep a list of the postings you like\.

*Commands:*
/filters \- set up search filters
/jobs \- show matching jobs
/saved \- your saved jobs
/export \- download saved jobs
/help \- help

Start with /filters`, EscapeMarkdown(name))
}

func FormatHelpMessage() string {
	return `*📖 Help*

/start \- start the bot
/filters \- set up search filters
/jobs \- show jobs matching your filters
/saved \- show your saved jobs
/export \- download saved jobs as JSON, CSV or text
/help \- this message

*Filters:*
• *Country* matches any level of the job location, e\.g\. UK or London
• *Category* is one of the job board categories
• *Company* matches part of the company name
• *Salary* accepts a range such as 30000\-50000, a minimum such as 30000, or a maximum such as \-50000
• *Role type* can combine several values
• *Posted* limits jobs to today, the past week or the past month

All filters apply together\.`
}

func FormatNoJobsMessage() string {
	return `😔 *No jobs found*

Try changing your filters with /filters`
}

func FormatNoSavedJobsMessage() string {
	return `ℹ️ *You have no saved jobs*

Use the ⭐ button under a job to save it\.`
}

var filterDisplayNames = map[string]string{
	models.FilterTypeCountry:   "Country",
	models.FilterTypeCategory:  "Category",
	models.FilterTypeCompany:   "Company",
	models.FilterTypeSalaryMin: "Minimum salary",
	models.FilterTypeSalaryMax: "Maximum salary",
	models.FilterTypeRoleType:  "Role type",
	models.FilterTypePeriod:    "Posted",
}

func FilterDisplayName(filterType string) string {
	if name, ok := filterDisplayNames[filterType]; ok {
		return name
	}
	return filterType
}

func formatFilterValue(filterType, value string) string {
	switch filterType {
	case models.FilterTypeCategory:
		return models.CategoryFromString(value).Label()
	case models.FilterTypeSalaryMin, models.FilterTypeSalaryMax:
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return formatAmount(v)
		}
		return value
	case models.FilterTypeRoleType:
		var names []string
		for _, id := range SplitList(value) {
			names = append(names, models.GetRoleTypeDisplayName(id))
		}
		return strings.Join(names, ", ")
	case models.FilterTypePeriod:
		return models.GetPeriodDisplayName(value)
	default:
		return value
	}
}

// FormatFiltersMessage lists the user's filters in a fixed order.
func FormatFiltersMessage(filters map[string]string) string {
	if len(filters) == 0 {
		return "ℹ️ You have no filters set"
	}

	var sb strings.Builder
	sb.WriteString("*📋 Your filters:*\n\n")

	for _, filterType := range models.FilterTypes {
		value, ok := filters[filterType]
		if !ok || value == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("• *%s:* %s\n",
			EscapeMarkdown(FilterDisplayName(filterType)),
			EscapeMarkdown(formatFilterValue(filterType, value)),
		))
	}

	return sb.String()
}

func FormatFilterSet(filterType, value string) string {
	return fmt.Sprintf("✅ *%s* set: %s",
		EscapeMarkdown(FilterDisplayName(filterType)),
		EscapeMarkdown(formatFilterValue(filterType, value)),
	)
}

// SplitList splits a comma separated filter value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	return replacer.Replace(text)
}

// TruncateString cuts s to at most maxLen runes, marking the cut with "...".
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

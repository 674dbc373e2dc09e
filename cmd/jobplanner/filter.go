package main

import (
	"fmt"
	"time"

	"jobplanner/internal/catalog"
	"jobplanner/internal/filter"
	"jobplanner/internal/models"
	"jobplanner/internal/savedjobs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter the job catalog",
	Long: "Applies every given criterion to the catalog and writes the matching jobs in catalog order. " +
		"Criteria that are not given match every job.",
	Example: `  jobplanner filter --country UK --category "IT Jobs" --salary-min 40000
  jobplanner filter --role-type full_time --role-type contract --posted week --format csv --out jobs.csv
  jobplanner filter --company tech --from 2024-03-01 --to 2024-03-31 --save`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

var filterOpts struct {
	country   string
	category  string
	company   string
	salaryMin float64
	salaryMax float64
	roleTypes []string
	posted    string
	from      string
	to        string
	format    string
	out       string
	save      bool
}

func init() {
	f := filterCmd.Flags()
	f.StringVar(&filterOpts.country, "country", "", "Match any level of the job location, ignoring case")
	f.StringVar(&filterOpts.category, "category", "", "Category label or tag (see `jobplanner categories`)")
	f.StringVar(&filterOpts.company, "company", "", "Match part of the company name, ignoring case")
	f.Float64Var(&filterOpts.salaryMin, "salary-min", 0, "Lower salary bound")
	f.Float64Var(&filterOpts.salaryMax, "salary-max", 0, "Upper salary bound")
	f.StringArrayVar(&filterOpts.roleTypes, "role-type", nil, "Role type to accept: full_time, part_time or contract (repeatable)")
	f.StringVar(&filterOpts.posted, "posted", "", "Posting date window: today, week or month")
	f.StringVar(&filterOpts.from, "from", "", "Earliest posting date, YYYY-MM-DD (overrides --posted)")
	f.StringVar(&filterOpts.to, "to", "", "Latest posting date, YYYY-MM-DD (overrides --posted)")
	f.StringVarP(&filterOpts.format, "format", "f", "txt", "Output format: json, csv or txt")
	f.StringVarP(&filterOpts.out, "out", "o", "", "Output file (default stdout)")
	f.BoolVar(&filterOpts.save, "save", false, "Add the matching jobs to the saved jobs file")

	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, _ []string) error {
	criteria, err := filterCriteria(cmd)
	if err != nil {
		return err
	}

	format, err := outputFormat(cmd, filterOpts.format, filterOpts.out)
	if err != nil {
		return err
	}

	jobs, err := catalog.Load(catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	matched, err := criteria.Filter(jobs, time.Now())
	if err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}

	log.Info("catalog filtered",
		zap.String("catalog", catalogPath),
		zap.Int("jobs", len(jobs)),
		zap.Int("matched", len(matched)),
	)

	if filterOpts.save {
		if err := saveAll(matched); err != nil {
			return err
		}
	}

	return writeRecords(cmd, matched, format, filterOpts.out)
}

// filterCriteria builds criteria from the flags. Salary bounds count only
// when given; role types accept menu labels as well as codes.
func filterCriteria(cmd *cobra.Command) (filter.Criteria, error) {
	window, err := filter.ParseDateWindow(filterOpts.posted)
	if err != nil {
		return filter.Criteria{}, err
	}

	if filterOpts.category != "" && !models.IsValidCategory(filterOpts.category) {
		return filter.Criteria{}, fmt.Errorf("unknown category %q (see `jobplanner categories`)", filterOpts.category)
	}

	criteria := filter.Criteria{
		Country:    filterOpts.country,
		Category:   filterOpts.category,
		Company:    filterOpts.company,
		Window:     window,
		PostedFrom: filterOpts.from,
		PostedTo:   filterOpts.to,
	}

	if cmd.Flags().Changed("salary-min") {
		v := filterOpts.salaryMin
		criteria.SalaryMin = &v
	}
	if cmd.Flags().Changed("salary-max") {
		v := filterOpts.salaryMax
		criteria.SalaryMax = &v
	}

	for _, rt := range filterOpts.roleTypes {
		if id := models.GetRoleTypeID(rt); id != "" {
			rt = id
		}
		criteria.RoleTypes = append(criteria.RoleTypes, rt)
	}

	return criteria, nil
}

func saveAll(jobs []models.JobRecord) error {
	store, err := savedjobs.Load(savedPath, log)
	if err != nil {
		return err
	}

	before := store.Count()
	if err := store.Set(append(store.Jobs(), jobs...)); err != nil {
		return err
	}

	log.Info("matches saved",
		zap.String("file", store.Path()),
		zap.Int("added", store.Count()-before),
	)
	return nil
}

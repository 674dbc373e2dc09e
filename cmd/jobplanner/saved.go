package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"jobplanner/internal/catalog"
	"jobplanner/internal/savedjobs"

	"github.com/spf13/cobra"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage the saved jobs file",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved jobs",
	Args:  cobra.NoArgs,
	RunE:  runSavedList,
}

var savedAddCmd = &cobra.Command{
	Use:   "add <id>...",
	Short: "Save catalog jobs by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSavedAdd,
}

var savedRemoveCmd = &cobra.Command{
	Use:     "remove <id>...",
	Aliases: []string{"rm"},
	Short:   "Remove saved jobs by ID",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runSavedRemove,
}

var savedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved job",
	Args:  cobra.NoArgs,
	RunE:  runSavedClear,
}

func init() {
	savedCmd.AddCommand(savedListCmd, savedAddCmd, savedRemoveCmd, savedClearCmd)
	rootCmd.AddCommand(savedCmd)
}

func loadSaved() (*savedjobs.Store, error) {
	return savedjobs.Load(savedPath, log)
}

func runSavedList(cmd *cobra.Command, _ []string) error {
	store, err := loadSaved()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if store.Count() == 0 {
		fmt.Fprintln(out, "No saved jobs.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION")
	for _, job := range store.Jobs() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", job.ID, job.Title, job.CompanyName(), job.LocationName())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%d saved, last written %s\n", store.Count(), store.LastSaved().Format(time.DateTime))
	return nil
}

func runSavedAdd(cmd *cobra.Command, args []string) error {
	c := catalog.New(catalogPath, log)
	if _, err := c.Reload(); err != nil {
		return err
	}

	store, err := loadSaved()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range args {
		job, ok := c.Get(id)
		if !ok {
			return fmt.Errorf("job %q not found in %s", id, catalogPath)
		}

		added, err := store.Add(job)
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(out, "saved %s: %s\n", id, job.Title)
		} else {
			fmt.Fprintf(out, "already saved %s\n", id)
		}
	}
	return nil
}

func runSavedRemove(cmd *cobra.Command, args []string) error {
	store, err := loadSaved()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range args {
		removed, err := store.Remove(id)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintf(out, "removed %s\n", id)
		} else {
			fmt.Fprintf(out, "not saved %s\n", id)
		}
	}
	return nil
}

func runSavedClear(cmd *cobra.Command, _ []string) error {
	store, err := loadSaved()
	if err != nil {
		return err
	}

	count := store.Count()
	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "removed %d saved jobs\n", count)
	return nil
}

// Package history implements the history command over the run ledger.
package history

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dtnitsch/sitegen/internal/common"
	"github.com/dtnitsch/sitegen/models"
	"github.com/dtnitsch/sitegen/pkg/db"
	"github.com/urfave/cli/v2"
)

// HistoryAction lists recorded runs, the findings of one run (--run) or
// the pages that changed between the last two runs (--diff).
func HistoryAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return common.Usage(logger, "invalid configuration", err)
	}

	database, err := db.Open(cfg.HistoryDB)
	if err != nil {
		return common.Fail(logger, "failed to open history database", err)
	}
	defer database.Close()

	switch {
	case c.Bool("diff"):
		err = printDiff(os.Stdout, database)
	case c.String("run") != "":
		err = printRun(os.Stdout, database, c.String("run"))
	default:
		err = printRuns(os.Stdout, database, c.Int("limit"))
	}
	if err != nil {
		return common.Usage(logger, "history query failed", err)
	}
	return nil
}

// resolveRunID maps "latest" to the most recent run id.
func resolveRunID(database *db.DB, arg string) (string, error) {
	if arg != "latest" {
		return arg, nil
	}
	runs, err := database.ListRuns(1)
	if err != nil {
		return "", fmt.Errorf("failed to get latest run: %w", err)
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs found. Run 'sitegen run --history-db PATH' first")
	}
	return runs[0].RunID, nil
}

func printRuns(w io.Writer, database *db.DB, limit int) error {
	runs, err := database.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	fmt.Fprintf(w, "%-36s %-20s %-6s %-7s %-7s %-7s %-5s %-30s\n",
		"Run ID", "Started", "Pages", "Broken", "DupT", "DupD", "Thin", "Output Dir")
	fmt.Fprintln(w, strings.Repeat("-", 125))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s %-20s %-6d %-7d %-7d %-7d %-5d %-30s\n",
			r.RunID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Report.TotalPages,
			r.Report.BrokenLinks,
			r.Report.DuplicateTitles,
			r.Report.DuplicateDescriptions,
			r.Report.ThinPages,
			r.OutputDir,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'sitegen history --run <id|latest>' to see findings\n")
	return nil
}

func printRun(w io.Writer, database *db.DB, arg string) error {
	runID, err := resolveRunID(database, arg)
	if err != nil {
		return err
	}
	run, err := database.GetRun(runID)
	if err != nil {
		return err
	}
	findings, err := database.GetRunFindings(runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run %s\n", run.RunID)
	fmt.Fprintf(w, "Started: %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Output:  %s\n", run.OutputDir)
	fmt.Fprintf(w, "Pages:   %d\n\n", run.Report.TotalPages)

	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings")
		return nil
	}
	fmt.Fprintf(w, "%-22s %-30s %s\n", "Kind", "Page", "Detail")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, f := range findings {
		fmt.Fprintf(w, "%-22s %-30s %s\n", f.Kind, f.Page, findingDetail(f))
	}
	fmt.Fprintf(w, "\nTotal: %d findings\n", len(findings))
	return nil
}

func findingDetail(f models.Finding) string {
	switch {
	case f.Target != "" && f.Detail != "":
		return f.Target + " (" + f.Detail + ")"
	case f.Target != "":
		return f.Target
	case f.Value != "":
		return fmt.Sprintf("%q x%d", f.Value, f.Count)
	default:
		return f.Detail
	}
}

func printDiff(w io.Writer, database *db.DB) error {
	runs, err := database.ListRuns(2)
	if err != nil {
		return err
	}
	if len(runs) < 2 {
		return fmt.Errorf("need at least two recorded runs to diff, found %d", len(runs))
	}
	newer, older := runs[0], runs[1]

	changes, err := database.ChangedPages(older.RunID, newer.RunID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s -> %s\n", older.RunID, newer.RunID)
	if len(changes) == 0 {
		fmt.Fprintln(w, "No page changes")
		return nil
	}
	for _, ch := range changes {
		fmt.Fprintf(w, "%-8s %s\n", ch.Change, ch.Path)
	}
	fmt.Fprintf(w, "\nTotal: %d changed pages\n", len(changes))
	return nil
}

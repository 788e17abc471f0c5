package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/quayside/internal/app"
	"github.com/five82/quayside/internal/containers"
	"github.com/five82/quayside/internal/view"
)

const departureLayout = "02/01/2006 03:04 PM"

// ListCmd returns the list command.
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of containers",
		Long: `Fetch every container and print one page of the filtered list.

--query matches ID, agency, booking and the three ports, ignoring case.
--date keeps containers departing on that day (dd/mm/yyyy). When both are
given a container must match both.

Examples:
  quayside list
  quayside list --query maersk --page 2
  quayside list --date 01/03/2024 --page-size 50`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("query", "q", "", "text to match")
	cmd.Flags().StringP("date", "d", "", "departure day, dd/mm/yyyy")
	cmd.Flags().IntP("page", "p", 1, "page number, starting at 1")
	cmd.Flags().IntP("page-size", "s", 0, "rows per page: 10, 20, 30, 40 or 50 (default from config)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	dateArg, _ := cmd.Flags().GetString("date")
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	if page < 1 {
		return fmt.Errorf("page must be 1 or greater, got %d", page)
	}
	var date *view.Date
	if dateArg != "" {
		d, err := view.ParseDate(dateArg)
		if err != nil {
			return err
		}
		date = &d
	}

	rt, err := app.Setup(cmd.Context(), sessionOptions(cmd))
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	if pageSize == 0 {
		pageSize = rt.Config.PageSize
	}

	engine := view.New()
	if err := engine.SetPageSize(pageSize); err != nil {
		return fmt.Errorf("page size %d: %w", pageSize, err)
	}

	records, err := rt.Client.FetchAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch containers: %w", err)
	}
	engine.Load(records)
	engine.SetDateFilter(date)
	if query == "" {
		engine.CommitDateSearch()
	} else {
		engine.SetQuery(query)
	}
	engine.SetPageIndex(page - 1)

	printPage(cmd, engine.Page())
	return nil
}

func printPage(cmd *cobra.Command, page view.Page) {
	out := cmd.OutOrStdout()
	if len(page.Rows) == 0 {
		fmt.Fprintln(out, color.New(color.FgYellow).Sprint("No results."))
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAGENCY\tTRANSHIPMENT\tCARRIER\tBOOKING\tLOAD\tDELIVER\tDISCHARGE\tDEPARTURE")
	for _, r := range page.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Agency, formatTranshipment(r), r.Carrier, r.Booking, r.LoadPort, r.DeliverPort, r.DischargePort,
			formatDeparture(r))
	}
	_ = w.Flush()

	first := page.Index*page.Size + 1
	last := first + len(page.Rows) - 1
	fmt.Fprintf(out, "\n%s  rows %d-%d of %d (%d total)\n",
		color.New(color.FgCyan).Sprintf("Page %d of %d", page.Index+1, page.Count),
		first, last, page.Filtered, page.Total)
}

func formatTranshipment(r containers.Record) string {
	if !r.HasTranshipment() {
		return "-"
	}
	return r.Transhipment
}

func formatDeparture(r containers.Record) string {
	if r.Departure.IsZero() {
		return "-"
	}
	return r.Departure.Format(departureLayout)
}

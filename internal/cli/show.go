package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/quayside/internal/app"
)

// ShowCmd returns the show command.
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [container-id]",
		Short: "Print a single container",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid container id %q", args[0])
	}

	rt, err := app.Setup(cmd.Context(), sessionOptions(cmd))
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	rec, err := rt.Client.FetchByID(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("fetch container %d: %w", id, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.New(color.FgCyan, color.Bold).Sprintf("Container %d", rec.ID))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Agency:\t%s\n", rec.Agency)
	fmt.Fprintf(w, "Transhipment:\t%s\n", formatTranshipment(rec))
	fmt.Fprintf(w, "Carrier:\t%s\n", rec.Carrier)
	fmt.Fprintf(w, "Booking:\t%s\n", rec.Booking)
	fmt.Fprintf(w, "Load port:\t%s\n", rec.LoadPort)
	fmt.Fprintf(w, "Deliver port:\t%s\n", rec.DeliverPort)
	fmt.Fprintf(w, "Discharge port:\t%s\n", rec.DischargePort)
	fmt.Fprintf(w, "Departure:\t%s (%s)\n", formatDeparture(rec), rec.Departure.Weekday())
	return w.Flush()
}

package report

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/inference-sim/debt-sim/sim"
)

var (
	errNoResult = errors.New("no simulation result")
	errNoBatch  = errors.New("no batch result")
)

// Print writes the end-of-run console summary.
func (s *Summary) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, `
--- Simulation Summary ---
Number of villagers: %d
Loan per villager: %.2f dinars
Number of years simulated: %d
Random seed: %d
Total initial loan principal: %.2f dinars
Last period's total debt: %.2f dinars
Last period's unpaid debt carried over: %.2f dinars
Last period's number of winners: %d
Last period's number of losers: %d
Peak unpaid debt: %.2f dinars (year %d)
`, s.Villagers, s.LoanPerVillager, s.Years, s.Seed, s.TotalPrincipal, s.LastTotalDebt, s.LastUnpaidDebt,
		s.LastWinners, s.LastLosers, s.PeakUnpaidDebt, s.PeakUnpaidYear)
	return err
}

// PrintYears writes one row per simulated year.
func PrintYears(w io.Writer, r *sim.Result) error {
	if r == nil {
		return errNoResult
	}
	s := Summarize(r)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "year\tdebt before\tunpaid\tunpaid %\twinners\tlosers\t")
	for i, y := range r.Years {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%d\t%d\t\n",
			y.Year, y.TotalDebtBeforeRepayment.StringFixed(2), y.UnpaidDebtCarriedOver.StringFixed(2),
			s.PercentUnpaid[i], y.Winners, y.Losers)
	}
	return tw.Flush()
}

// PrintBatch writes per-year mean and standard deviation across batch runs.
func PrintBatch(w io.Writer, b *sim.BatchResult) error {
	if b == nil {
		return errNoBatch
	}
	if _, err := fmt.Fprintf(w, "=== Batch of %d runs (villagers=%d, loan=%.2f, rate=%.4f, seed=%d) ===\n",
		len(b.Runs), b.Params.Villagers, b.Params.LoanPerVillager, b.Params.InterestRate, b.Seed); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "year\tdebt mean\tdebt std\tunpaid mean\tunpaid std\twinners mean\twinners std\twinners min\twinners max\t")
	for _, y := range b.Years {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t%d\t\n",
			y.Year, y.MeanTotalDebt, y.StdTotalDebt, y.MeanUnpaidDebt, y.StdUnpaidDebt,
			y.MeanWinners, y.StdWinners, y.MinWinners, y.MaxWinners)
	}
	return tw.Flush()
}

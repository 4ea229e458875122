// Package report renders simulation results: console summaries, exported
// yearly records and charts. It only reads sim.Result and sim.BatchResult.
package report

import (
	"github.com/inference-sim/debt-sim/sim"
)

// Summary aggregates the headline figures of a single run.
// Amounts are float64 for display; the exact decimals stay in sim.Result.
type Summary struct {
	Villagers       int
	LoanPerVillager float64
	Years           int
	Seed            int64

	TotalPrincipal float64 // villagers * loan, the pool handed out every year
	LastTotalDebt  float64 // last year's debt before repayment
	LastUnpaidDebt float64
	LastWinners    int
	LastLosers     int
	PeakUnpaidDebt float64
	PeakUnpaidYear int
	PercentUnpaid  []float64 // per year: unpaid / principal * 100
}

// Summarize computes aggregate figures from a Result.
// Safe for nil or empty results (returns zero-value fields).
func Summarize(r *sim.Result) *Summary {
	s := &Summary{}
	if r == nil {
		return s
	}
	s.Villagers = r.Params.Villagers
	s.LoanPerVillager = r.Params.LoanPerVillager
	s.Years = r.Params.Years
	s.Seed = r.Seed
	s.TotalPrincipal = r.Params.MoneyPool().InexactFloat64()

	s.PercentUnpaid = make([]float64, 0, len(r.Years))
	for _, y := range r.Years {
		unpaid := y.UnpaidDebtCarriedOver.InexactFloat64()
		s.PercentUnpaid = append(s.PercentUnpaid, percentOf(unpaid, s.TotalPrincipal))
		if unpaid > s.PeakUnpaidDebt {
			s.PeakUnpaidDebt = unpaid
			s.PeakUnpaidYear = y.Year
		}
	}

	if last, ok := r.Last(); ok {
		s.LastTotalDebt = last.TotalDebtBeforeRepayment.InexactFloat64()
		s.LastUnpaidDebt = last.UnpaidDebtCarriedOver.InexactFloat64()
		s.LastWinners = last.Winners
		s.LastLosers = last.Losers
	}
	return s
}

// percentOf returns part as a percentage of whole, or 0 when whole is 0.
func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

package sim

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// YearStats aggregates one year across all runs of a batch.
// Statistics are float64; the exact per-run amounts stay in Runs.
type YearStats struct {
	Year           int     `json:"year" yaml:"year"`
	MeanTotalDebt  float64 `json:"mean_total_debt_before_repayment" yaml:"mean_total_debt_before_repayment"`
	StdTotalDebt   float64 `json:"std_total_debt_before_repayment" yaml:"std_total_debt_before_repayment"`
	MeanUnpaidDebt float64 `json:"mean_unpaid_debt_carried_over" yaml:"mean_unpaid_debt_carried_over"`
	StdUnpaidDebt  float64 `json:"std_unpaid_debt_carried_over" yaml:"std_unpaid_debt_carried_over"`
	MeanWinners    float64 `json:"mean_winners" yaml:"mean_winners"`
	StdWinners     float64 `json:"std_winners" yaml:"std_winners"`
	MinWinners     int     `json:"min_winners" yaml:"min_winners"`
	MaxWinners     int     `json:"max_winners" yaml:"max_winners"`
}

// BatchResult holds every individual run of a batch and the per-year statistics.
type BatchResult struct {
	Params Params      `json:"params" yaml:"params"`
	Seed   int64       `json:"seed" yaml:"seed"`
	Runs   []*Result   `json:"-" yaml:"-"`
	Years  []YearStats `json:"years" yaml:"years"`
}

// RunBatch executes runs independent simulations of params. Run i orders
// repayments with the SubsystemRun(i) stream of seed and owns its own debt
// vector, so runs share nothing. Runs execute sequentially.
func RunBatch(params Params, seed int64, runs int) (*BatchResult, error) {
	if runs <= 0 {
		return nil, &InvalidParameterError{Param: "runs", Value: runs, Reason: "must be positive"}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(seed))
	batch := &BatchResult{Params: params, Seed: seed, Runs: make([]*Result, 0, runs)}
	for i := 0; i < runs; i++ {
		result, err := runWith(params, rng.Key(), rng.ForSubsystem(SubsystemRun(i)))
		if err != nil {
			return nil, err
		}
		batch.Runs = append(batch.Runs, result)
	}
	batch.Years = aggregateYears(batch.Runs, params.Years)

	logrus.Infof("Batch of %d runs complete (key=%d).", runs, rng.Key())
	return batch, nil
}

func aggregateYears(runs []*Result, years int) []YearStats {
	stats := make([]YearStats, years)
	totals := make([]float64, len(runs))
	unpaid := make([]float64, len(runs))
	winners := make([]float64, len(runs))
	for y := 0; y < years; y++ {
		for i, r := range runs {
			totals[i] = r.Years[y].TotalDebtBeforeRepayment.InexactFloat64()
			unpaid[i] = r.Years[y].UnpaidDebtCarriedOver.InexactFloat64()
			winners[i] = float64(r.Years[y].Winners)
		}
		ys := YearStats{
			Year:       y + 1,
			MinWinners: int(floats.Min(winners)),
			MaxWinners: int(floats.Max(winners)),
		}
		ys.MeanTotalDebt, ys.StdTotalDebt = meanStdDev(totals)
		ys.MeanUnpaidDebt, ys.StdUnpaidDebt = meanStdDev(unpaid)
		ys.MeanWinners, ys.StdWinners = meanStdDev(winners)
		stats[y] = ys
	}
	return stats
}

// meanStdDev returns the sample mean and standard deviation.
// A single observation has zero spread.
func meanStdDev(x []float64) (float64, float64) {
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

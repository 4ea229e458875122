package sim

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DebtVector holds one outstanding balance per villager, indexed by villager.
// Balances are exact decimals so a pool that equals the total debt pays
// every villager in full.
type DebtVector []decimal.Decimal

// NewDebtVector builds a DebtVector from plain amounts.
func NewDebtVector(amounts ...float64) DebtVector {
	d := make(DebtVector, len(amounts))
	for i, a := range amounts {
		d[i] = decimal.NewFromFloat(a)
	}
	return d
}

// Total returns the sum of all balances.
func (d DebtVector) Total() decimal.Decimal {
	return decimal.Sum(decimal.Zero, d...)
}

// State is the debt carried between years. The State returned by Step for
// year N is the input of year N+1.
type State struct {
	Year  int        // last completed year; 0 before the first step
	Debts DebtVector // balances after that year's repayment pass
}

// NewState returns the starting state: every villager owes nothing.
func NewState(villagers int) State {
	debts := make(DebtVector, villagers)
	for i := range debts {
		debts[i] = decimal.Zero
	}
	return State{Debts: debts}
}

// YearSummary is the aggregate outcome of one simulated year.
type YearSummary struct {
	Year                     int             `json:"year" yaml:"year"`
	TotalDebtBeforeRepayment decimal.Decimal `json:"total_debt_before_repayment" yaml:"total_debt_before_repayment"`
	UnpaidDebtCarriedOver    decimal.Decimal `json:"unpaid_debt_carried_over" yaml:"unpaid_debt_carried_over"`
	Winners                  int             `json:"winners" yaml:"winners"` // villagers repaid in full
	Losers                   int             `json:"losers" yaml:"losers"`   // villagers paid partially or not at all
}

// Result is the ordered sequence of yearly summaries for one run.
type Result struct {
	Params Params        `json:"params" yaml:"params"`
	Seed   int64         `json:"seed" yaml:"seed"`
	Years  []YearSummary `json:"years" yaml:"years"`
}

// Last returns the final year's summary, or false for an empty result.
func (r *Result) Last() (YearSummary, bool) {
	if r == nil || len(r.Years) == 0 {
		return YearSummary{}, false
	}
	return r.Years[len(r.Years)-1], true
}

// Engine advances a debt State one year at a time.
// Not safe for concurrent use: it draws from a single *rand.Rand.
type Engine struct {
	params Params
	growth decimal.Decimal // 1 + interest rate
	pool   decimal.Decimal // handed out every year; fixed at params.MoneyPool()
	rng    *rand.Rand
}

// NewEngine validates params and binds them to the random source that
// orders repayments.
func NewEngine(params Params, rng *rand.Rand) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("engine requires a random source")
	}
	return &Engine{params: params, growth: params.Growth(), pool: params.MoneyPool(), rng: rng}, nil
}

// Step simulates one year starting from s. The input state is not modified.
func (e *Engine) Step(s State) (State, YearSummary) {
	// New borrowing is charged interest in the year it is taken.
	newLoan := e.params.Loan().Mul(e.growth)

	debts := make(DebtVector, len(s.Debts))
	for i, carried := range s.Debts {
		debts[i] = carried.Mul(e.growth).Add(newLoan)
	}
	totalBefore := debts.Total()

	winners := repay(debts, e.rng.Perm(len(debts)), e.pool)

	next := State{Year: s.Year + 1, Debts: debts}
	summary := YearSummary{
		Year:                     next.Year,
		TotalDebtBeforeRepayment: totalBefore,
		UnpaidDebtCarriedOver:    debts.Total(),
		Winners:                  winners,
		Losers:                   len(debts) - winners,
	}
	return next, summary
}

// repay walks order once, paying balances in full while pool covers them.
// The first villager the pool cannot cover receives the remainder and the
// pass ends. Balances are reduced in place; the number paid in full is returned.
func repay(debts DebtVector, order []int, pool decimal.Decimal) int {
	winners := 0
	for _, idx := range order {
		if pool.GreaterThanOrEqual(debts[idx]) {
			pool = pool.Sub(debts[idx])
			debts[idx] = decimal.Zero
			winners++
			continue
		}
		debts[idx] = debts[idx].Sub(pool)
		break
	}
	return winners
}

// Run simulates params.Years years from zero debt, ordering repayments with
// the repayment stream of seed. Parameters are validated before any work;
// on failure the error is an *InvalidParameterError and no result is returned.
func Run(params Params, seed int64) (*Result, error) {
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	return runWith(params, rng.Key(), rng.ForSubsystem(SubsystemRepayment))
}

func runWith(params Params, key SimulationKey, rng *rand.Rand) (*Result, error) {
	seed := int64(key)
	engine, err := NewEngine(params, rng)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Starting debt simulation: villagers=%d, loan=%.2f, rate=%.4f, years=%d, seed=%d",
		params.Villagers, params.LoanPerVillager, params.InterestRate, params.Years, seed)

	result := &Result{Params: params, Seed: seed, Years: make([]YearSummary, 0, params.Years)}
	state := NewState(params.Villagers)
	for year := 1; year <= params.Years; year++ {
		var summary YearSummary
		state, summary = engine.Step(state)
		logrus.Debugf("[year %03d] debt=%s unpaid=%s winners=%d losers=%d",
			summary.Year, summary.TotalDebtBeforeRepayment.StringFixed(2), summary.UnpaidDebtCarriedOver.StringFixed(2),
			summary.Winners, summary.Losers)
		result.Years = append(result.Years, summary)
	}

	logrus.Info("Debt simulation complete.")
	return result, nil
}

package sim

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Params holds the four scalar inputs of a simulation run.
// Passed by value; a run never mutates it.
type Params struct {
	Villagers       int     `json:"villagers" yaml:"villagers"`                 // population size (must be > 0)
	LoanPerVillager float64 `json:"loan_per_villager" yaml:"loan_per_villager"` // principal lent to each villager every year (>= 0)
	InterestRate    float64 `json:"interest_rate" yaml:"interest_rate"`         // annual fraction, e.g. 0.04 (>= 0)
	Years           int     `json:"years" yaml:"years"`                         // number of simulated years (must be > 0)
}

// NewParams creates a Params with all fields explicitly specified.
func NewParams(villagers int, loanPerVillager, interestRate float64, years int) Params {
	return Params{
		Villagers:       villagers,
		LoanPerVillager: loanPerVillager,
		InterestRate:    interestRate,
		Years:           years,
	}
}

// MoneyPool returns the amount available for repayment every year:
// the total principal originally lent.
func (p Params) MoneyPool() decimal.Decimal {
	return p.Loan().Mul(decimal.NewFromInt(int64(p.Villagers)))
}

// Loan returns LoanPerVillager as an exact decimal amount.
// 33.3 becomes exactly 33.3, not the nearest binary float.
func (p Params) Loan() decimal.Decimal {
	return decimal.NewFromFloat(p.LoanPerVillager)
}

// Growth returns the yearly interest multiplier, 1 + InterestRate.
func (p Params) Growth() decimal.Decimal {
	return decimal.NewFromFloat(p.InterestRate).Add(decimal.NewFromInt(1))
}

// InvalidParameterError reports which parameter failed validation and why.
// It is returned before any simulation work begins.
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

// Validate checks every field and returns the first *InvalidParameterError found.
func (p Params) Validate() error {
	if p.Villagers <= 0 {
		return &InvalidParameterError{Param: "villagers", Value: p.Villagers, Reason: "must be positive"}
	}
	if err := validateFiniteNonNegative("loan_per_villager", p.LoanPerVillager); err != nil {
		return err
	}
	if err := validateFiniteNonNegative("interest_rate", p.InterestRate); err != nil {
		return err
	}
	if p.Years <= 0 {
		return &InvalidParameterError{Param: "years", Value: p.Years, Reason: "must be positive"}
	}
	return nil
}

func validateFiniteNonNegative(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return &InvalidParameterError{Param: name, Value: val, Reason: "must be a finite number"}
	}
	if val < 0 {
		return &InvalidParameterError{Param: name, Value: val, Reason: "must be non-negative"}
	}
	return nil
}

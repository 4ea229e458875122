package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/debt-sim/sim"
)

// csvHeader matches the JSON/YAML field names of yearRecord.
var csvHeader = []string{"year", "total_debt_before_repayment", "unpaid_debt_carried_over", "winners", "losers"}

// yearRecord is the flat exported form of sim.YearSummary, amounts as plain numbers.
type yearRecord struct {
	Year                     int     `json:"year" yaml:"year"`
	TotalDebtBeforeRepayment float64 `json:"total_debt_before_repayment" yaml:"total_debt_before_repayment"`
	UnpaidDebtCarriedOver    float64 `json:"unpaid_debt_carried_over" yaml:"unpaid_debt_carried_over"`
	Winners                  int     `json:"winners" yaml:"winners"`
	Losers                   int     `json:"losers" yaml:"losers"`
}

type resultRecord struct {
	Params sim.Params   `json:"params" yaml:"params"`
	Seed   int64        `json:"seed" yaml:"seed"`
	Years  []yearRecord `json:"years" yaml:"years"`
}

func newResultRecord(r *sim.Result) resultRecord {
	rec := resultRecord{Params: r.Params, Seed: r.Seed, Years: make([]yearRecord, len(r.Years))}
	for i, y := range r.Years {
		rec.Years[i] = yearRecord{
			Year:                     y.Year,
			TotalDebtBeforeRepayment: y.TotalDebtBeforeRepayment.InexactFloat64(),
			UnpaidDebtCarriedOver:    y.UnpaidDebtCarriedOver.InexactFloat64(),
			Winners:                  y.Winners,
			Losers:                   y.Losers,
		}
	}
	return rec
}

// WriteJSON writes the full result, parameters included, as indented JSON.
func WriteJSON(w io.Writer, r *sim.Result) error {
	if r == nil {
		return errNoResult
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newResultRecord(r)); err != nil {
		return fmt.Errorf("encoding result as JSON: %w", err)
	}
	return nil
}

// WriteYAML writes the full result, parameters included, as YAML.
func WriteYAML(w io.Writer, r *sim.Result) error {
	if r == nil {
		return errNoResult
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newResultRecord(r)); err != nil {
		return fmt.Errorf("encoding result as YAML: %w", err)
	}
	return enc.Close()
}

// WriteCSV writes one row per year under a header row.
// Amounts are written as exact decimals.
func WriteCSV(w io.Writer, r *sim.Result) error {
	if r == nil {
		return errNoResult
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, y := range r.Years {
		row := []string{
			strconv.Itoa(y.Year),
			y.TotalDebtBeforeRepayment.String(),
			y.UnpaidDebtCarriedOver.String(),
			strconv.Itoa(y.Winners),
			strconv.Itoa(y.Losers),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for year %d: %w", y.Year, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveResults writes r to path in the format named by its extension:
// .json, .yaml/.yml or .csv.
func SaveResults(r *sim.Result, path string) (err error) {
	if r == nil {
		return errNoResult
	}
	var write func(io.Writer, *sim.Result) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		write = WriteJSON
	case ".yaml", ".yml":
		write = WriteYAML
	case ".csv":
		write = WriteCSV
	default:
		return fmt.Errorf("unsupported results format %q; valid: .json, .yaml, .yml, .csv", ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing results file: %w", closeErr)
		}
	}()

	if err := write(file, r); err != nil {
		return err
	}
	logrus.Debugf("Successfully wrote results to '%s'", path)
	return nil
}

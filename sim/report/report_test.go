package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/debt-sim/sim"
	"github.com/inference-sim/debt-sim/sim/internal/testutil"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedResult() *sim.Result {
	return &sim.Result{
		Params: sim.NewParams(5, 100, 0.04, 3),
		Seed:   42,
		Years: []sim.YearSummary{
			{Year: 1, TotalDebtBeforeRepayment: amount("520"), UnpaidDebtCarriedOver: amount("20"), Winners: 4, Losers: 1},
			{Year: 2, TotalDebtBeforeRepayment: amount("540.8"), UnpaidDebtCarriedOver: amount("40.8"), Winners: 4, Losers: 1},
			{Year: 3, TotalDebtBeforeRepayment: amount("562.432"), UnpaidDebtCarriedOver: amount("62.432"), Winners: 3, Losers: 2},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixedResult())

	assert.Equal(t, 5, s.Villagers)
	assert.Equal(t, 3, s.Years)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 500.0, s.TotalPrincipal)
	assert.Equal(t, 562.432, s.LastTotalDebt)
	assert.Equal(t, 3, s.LastWinners)
	assert.Equal(t, 2, s.LastLosers)
	assert.Equal(t, 62.432, s.PeakUnpaidDebt)
	assert.Equal(t, 3, s.PeakUnpaidYear)
	testutil.AssertSeriesEqual(t, "percent unpaid", []float64{4, 8.16, 12.4864}, s.PercentUnpaid, 1e-9)
}

func TestSummarize_NilAndEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Villagers)
	assert.Empty(t, s.PercentUnpaid)

	s = Summarize(&sim.Result{Params: sim.NewParams(5, 100, 0.04, 1)})
	assert.Equal(t, 500.0, s.TotalPrincipal)
	assert.Zero(t, s.LastWinners)
}

func TestSummarize_ZeroPrincipal(t *testing.T) {
	r := &sim.Result{
		Params: sim.NewParams(5, 0, 0.04, 1),
		Years:  []sim.YearSummary{{Year: 1, Winners: 5}},
	}
	assert.Equal(t, []float64{0}, Summarize(r).PercentUnpaid)
}

func TestSummary_Print(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summarize(fixedResult()).Print(&buf))

	out := buf.String()
	assert.Contains(t, out, "--- Simulation Summary ---")
	assert.Contains(t, out, "Number of villagers: 5")
	assert.Contains(t, out, "Loan per villager: 100.00 dinars")
	assert.Contains(t, out, "Number of years simulated: 3")
	assert.Contains(t, out, "Random seed: 42")
	assert.Contains(t, out, "Last period's unpaid debt carried over: 62.43 dinars")
	assert.Contains(t, out, "Peak unpaid debt: 62.43 dinars (year 3)")
	assert.Contains(t, out, "Total initial loan principal: 500.00 dinars")
	assert.Contains(t, out, "Last period's total debt: 562.43 dinars")
	assert.Contains(t, out, "Last period's number of winners: 3")
	assert.Contains(t, out, "Last period's number of losers: 2")
}

func TestPrintYears(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintYears(&buf, fixedResult()))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Contains(t, string(lines[0]), "unpaid %")
	assert.Contains(t, string(lines[2]), "540.80")
	assert.Contains(t, string(lines[2]), "8.2")
}

func TestPrintBatch(t *testing.T) {
	batch, err := sim.RunBatch(sim.NewParams(10, 100, 0.04, 4), 42, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PrintBatch(&buf, batch))

	out := buf.String()
	assert.Contains(t, out, "Batch of 3 runs")
	assert.Contains(t, out, "winners mean")
	assert.Len(t, bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")), 6)
}

func TestWriteJSON_FlatYearFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, fixedResult()))

	var decoded struct {
		Seed  int64            `json:"seed"`
		Years []map[string]any `json:"years"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, int64(42), decoded.Seed)
	require.Len(t, decoded.Years, 3)
	for _, key := range csvHeader {
		assert.Contains(t, decoded.Years[0], key)
	}
	assert.Equal(t, 20.0, decoded.Years[0]["unpaid_debt_carried_over"])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, fixedResult()))

	var decoded resultRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, newResultRecord(fixedResult()), decoded)
	assert.Equal(t, 540.8, decoded.Years[1].TotalDebtBeforeRepayment)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, fixedResult()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"2", "540.8", "40.8", "4", "1"}, rows[2])
}

func TestSaveResults(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"out.json", "out.yaml", "out.yml", "out.CSV"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, SaveResults(fixedResult(), path))
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}

	err := SaveResults(fixedResult(), filepath.Join(dir, "out.txt"))
	assert.ErrorContains(t, err, "unsupported results format")
	assert.NoFileExists(t, filepath.Join(dir, "out.txt"))
}

func TestSaveCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	require.NoError(t, SaveCharts(fixedResult(), dir))

	for _, name := range []string{DebtChartFile, UnpaidChartFile, WinnersChartFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestSaveCharts_EmptyResult(t *testing.T) {
	assert.Error(t, SaveCharts(&sim.Result{}, t.TempDir()))
	assert.Error(t, SaveCharts(nil, t.TempDir()))
}

func TestNilResults_ReturnErrors(t *testing.T) {
	var buf bytes.Buffer

	assert.Error(t, PrintYears(&buf, nil))
	assert.Error(t, PrintBatch(&buf, nil))
	assert.Error(t, WriteCSV(&buf, nil))
	assert.Error(t, WriteJSON(&buf, nil))
	assert.Error(t, WriteYAML(&buf, nil))
	assert.Error(t, SaveResults(nil, filepath.Join(t.TempDir(), "out.json")))
	assert.Empty(t, buf.String())
}

func TestWriteCSV_ExactAmountsFromRun(t *testing.T) {
	result, err := sim.Run(sim.NewParams(7, 33.3, 0, 2), 42)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, result))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "233.1", "0", "7", "0"}, rows[1])
	assert.Equal(t, []string{"2", "233.1", "0", "7", "0"}, rows[2])
}

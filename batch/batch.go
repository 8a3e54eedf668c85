// Package batch evaluates many measurements read from CSV and summarises them.
package batch

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"ac_efficiency_calc/efficiency"
)

// ErrTooManyRows is returned by Read when the input exceeds the row limit.
var ErrTooManyRows = errors.New("too many rows")

// InputRow is one measurement as it appears in the input CSV. Fields stay as
// text so a malformed value is reported against its row instead of failing
// the whole file.
type InputRow struct {
	Airflow     string `csv:"airflow"`
	AirflowUnit string `csv:"airflow_unit"`
	TempIn      string `csv:"temperature_in"`
	TempOut     string `csv:"temperature_out"`
	RHIn        string `csv:"relative_humidity_in"`
	RHOut       string `csv:"relative_humidity_out"`
	Power       string `csv:"power_input"`
	PowerUnit   string `csv:"power_unit"`
}

func (r InputRow) raw() efficiency.RawMeasurement {
	return efficiency.RawMeasurement{
		Airflow:     r.Airflow,
		AirflowUnit: r.AirflowUnit,
		TempIn:      r.TempIn,
		TempOut:     r.TempOut,
		RHIn:        r.RHIn,
		RHOut:       r.RHOut,
		Power:       r.Power,
		PowerUnit:   r.PowerUnit,
	}
}

// ResultRow echoes the input and carries either the rounded result or the error message.
type ResultRow struct {
	Row int `csv:"row"`
	InputRow

	SensibleCapacityW string `csv:"sensible_capacity_w"`
	LatentCapacityW   string `csv:"latent_capacity_w"`
	TotalCapacityW    string `csv:"total_capacity_w"`
	COP               string `csv:"cop"`
	EER               string `csv:"eer"`
	Error             string `csv:"error"`

	result efficiency.EfficiencyResult
	err    error
}

// Result returns the unrounded result and the calculation error of the row.
func (r ResultRow) Result() (efficiency.EfficiencyResult, error) {
	return r.result, r.err
}

// Summary aggregates the successful rows of a batch.
type Summary struct {
	Rows               int
	OK                 int
	Failed             int
	MeanCOP            float64
	MinCOP             float64
	MaxCOP             float64
	MeanEER            float64
	MeanTotalCapacityW float64

	// 吸込・吹出空気の平均水蒸気圧, kPa
	MeanVaporPressureInKPa  float64
	MeanVaporPressureOutKPa float64
}

// Read parses the input CSV. maxRows <= 0 disables the limit.
func Read(r io.Reader, maxRows int) ([]InputRow, error) {
	var rows []InputRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read batch csv: %w", err)
	}
	if maxRows > 0 && len(rows) > maxRows {
		return nil, fmt.Errorf("%w: %d rows, limit %d", ErrTooManyRows, len(rows), maxRows)
	}
	return rows, nil
}

// Evaluate computes every row. A failing row is recorded, not fatal.
func Evaluate(rows []InputRow) []ResultRow {
	out := make([]ResultRow, len(rows))
	for i, row := range rows {
		out[i] = ResultRow{Row: i + 1, InputRow: row}

		res, err := efficiency.Compute(row.raw())
		if err != nil {
			out[i].err = err
			out[i].Error = err.Error()
			continue
		}

		out[i].result = res
		out[i].SensibleCapacityW = formatFloat(res.SensibleCapacityW)
		out[i].LatentCapacityW = formatFloat(res.LatentCapacityW)
		out[i].TotalCapacityW = formatFloat(res.TotalCapacityW)
		out[i].COP = formatFloat(res.COP)
		out[i].EER = formatFloat(res.EER)
	}
	return out
}

// Write encodes results as CSV with a header line.
func Write(w io.Writer, results []ResultRow) error {
	if err := gocsv.Marshal(results, w); err != nil {
		return fmt.Errorf("write batch csv: %w", err)
	}
	return nil
}

// Summarize computes statistics over the rows without errors.
func Summarize(results []ResultRow) Summary {
	s := Summary{Rows: len(results)}

	var cop, eer, total, x_in, x_out []float64
	for _, r := range results {
		if r.err != nil {
			s.Failed++
			continue
		}
		cop = append(cop, r.result.COP)
		eer = append(eer, r.result.EER)
		total = append(total, r.result.TotalCapacityW)
		x_in = append(x_in, r.result.HumidityInGkg)
		x_out = append(x_out, r.result.HumidityOutGkg)
	}
	s.OK = len(cop)
	if s.OK == 0 {
		return s
	}

	s.MeanCOP = stat.Mean(cop, nil)
	s.MinCOP = floats.Min(cop)
	s.MaxCOP = floats.Max(cop)
	s.MeanEER = stat.Mean(eer, nil)
	s.MeanTotalCapacityW = stat.Mean(total, nil)

	// 水蒸気圧, kPa, [i]
	p_v_in_is := efficiency.VaporPressures(mat.NewVecDense(s.OK, x_in))
	p_v_out_is := efficiency.VaporPressures(mat.NewVecDense(s.OK, x_out))
	s.MeanVaporPressureInKPa = stat.Mean(p_v_in_is, nil)
	s.MeanVaporPressureOutKPa = stat.Mean(p_v_out_is, nil)
	return s
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

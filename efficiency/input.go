package efficiency

import (
	"math"
	"strconv"
	"strings"
)

// 入力欄の名前
const (
	FieldAirflow             = "airflow"
	FieldAirflowUnit         = "airflow_unit"
	FieldTemperatureIn       = "temperature_in"
	FieldTemperatureOut      = "temperature_out"
	FieldRelativeHumidityIn  = "relative_humidity_in"
	FieldRelativeHumidityOut = "relative_humidity_out"
	FieldPowerInput          = "power_input"
	FieldPowerUnit           = "power_unit"
)

// MeasurementInput は1回の計算に使う測定値。呼び出し側が所有し、計算後は破棄してよい。
type MeasurementInput struct {
	Airflow     float64     // 風量, AirflowUnit
	AirflowUnit AirflowUnit // 風量の単位
	TempIn      float64     // 吸込空気温度, degree C
	TempOut     float64     // 吹出空気温度, degree C
	RHIn        float64     // 吸込空気の相対湿度, %
	RHOut       float64     // 吹出空気の相対湿度, %
	Power       float64     // 消費電力, PowerUnit
	PowerUnit   PowerUnit   // 消費電力の単位
}

// RawMeasurement は入力フォームから受け取った文字列そのまま。
type RawMeasurement struct {
	Airflow     string `json:"airflow"`
	AirflowUnit string `json:"airflow_unit"`
	TempIn      string `json:"temperature_in"`
	TempOut     string `json:"temperature_out"`
	RHIn        string `json:"relative_humidity_in"`
	RHOut       string `json:"relative_humidity_out"`
	Power       string `json:"power_input"`
	PowerUnit   string `json:"power_unit"`
}

/*
入力文字列を MeasurementInput に変換する。

	Returns:
	    最初に解析できなかった欄を示す InputError

	Notes:
	    欄は airflow, temperature_in, temperature_out, relative_humidity_in,
	    relative_humidity_out, power_input, airflow_unit, power_unit の順に検査する。
	    単位が空欄の場合は m3/h と W とみなす。
*/
func ParseMeasurement(raw RawMeasurement) (MeasurementInput, error) {
	var in MeasurementInput
	var err error

	fields := []struct {
		name string
		text string
		dst  *float64
	}{
		{FieldAirflow, raw.Airflow, &in.Airflow},
		{FieldTemperatureIn, raw.TempIn, &in.TempIn},
		{FieldTemperatureOut, raw.TempOut, &in.TempOut},
		{FieldRelativeHumidityIn, raw.RHIn, &in.RHIn},
		{FieldRelativeHumidityOut, raw.RHOut, &in.RHOut},
		{FieldPowerInput, raw.Power, &in.Power},
	}
	for _, f := range fields {
		if *f.dst, err = parseNumber(f.name, f.text); err != nil {
			return MeasurementInput{}, err
		}
	}

	in.AirflowUnit = AirflowM3h
	if strings.TrimSpace(raw.AirflowUnit) != "" {
		if in.AirflowUnit, err = ParseAirflowUnit(raw.AirflowUnit); err != nil {
			return MeasurementInput{}, err
		}
	}

	in.PowerUnit = PowerW
	if strings.TrimSpace(raw.PowerUnit) != "" {
		if in.PowerUnit, err = ParsePowerUnit(raw.PowerUnit); err != nil {
			return MeasurementInput{}, err
		}
	}

	return in, nil
}

func parseNumber(field, text string) (float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, &InputError{Field: field}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &InputError{Field: field, Value: text, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InputError{Field: field, Value: text, Err: strconv.ErrSyntax}
	}

	return v, nil
}

// Package efficiency は空調機の吸込・吹出空気の状態と消費電力から
// 顕熱・潜熱・全熱の冷房能力と COP, EER を求める。
package efficiency

import "math"

// EfficiencyResult は ComputeEfficiency の計算結果。丸めは行わない。
type EfficiencyResult struct {
	SensibleCapacityW float64 `json:"sensible_capacity_w"` // 顕熱能力, W
	LatentCapacityW   float64 `json:"latent_capacity_w"`   // 潜熱能力, W
	TotalCapacityW    float64 `json:"total_capacity_w"`    // 全熱能力, W
	COP               float64 `json:"cop"`                 // 成績係数, -
	EER               float64 `json:"eer"`                 // エネルギー効率比, BTU/h/W

	AirflowM3h      float64 `json:"airflow_m3h"`         // 風量, m3/h
	PowerW          float64 `json:"power_w"`             // 消費電力, W
	MassFlowRateKgS float64 `json:"mass_flow_rate_kg_s"` // 質量流量, kg/s
	DeltaT          float64 `json:"delta_t"`             // 吸込と吹出の温度差, K
	HumidityInGkg   float64 `json:"humidity_in_g_kg"`    // 吸込空気の絶対湿度, g/kgDA
	HumidityOutGkg  float64 `json:"humidity_out_g_kg"`   // 吹出空気の絶対湿度, g/kgDA
}

/*
冷房能力と効率を計算する。

	Args:
	    in: 測定値

	Returns:
	    計算結果
	    消費電力が 0 の場合は DivisionByZeroError
	    飽和水蒸気圧・絶対湿度が求められない場合は DomainError
*/
func ComputeEfficiency(in MeasurementInput) (EfficiencyResult, error) {
	// 風量, m3/h
	v, err := NormalizeAirflow(in.Airflow, in.AirflowUnit)
	if err != nil {
		return EfficiencyResult{}, err
	}

	// 消費電力, W
	p, err := NormalizePower(in.Power, in.PowerUnit)
	if err != nil {
		return EfficiencyResult{}, err
	}

	// 質量流量, kg/s
	m := v / secondsPerHour * rhoA

	// 温度差, K
	delta_t := in.TempIn - in.TempOut

	// 絶対湿度, g/kgDA
	x_in, err := SpecificHumidity(in.RHIn, in.TempIn)
	if err != nil {
		return EfficiencyResult{}, err
	}
	x_out, err := SpecificHumidity(in.RHOut, in.TempOut)
	if err != nil {
		return EfficiencyResult{}, err
	}

	// 顕熱能力, W
	q_s := m * cA * delta_t * 1000

	// 絶対湿度差, kg/kgDA
	delta_x := (x_in - x_out) / 1000

	// 潜熱能力, W
	q_l := m * lWtr * delta_x * 1000

	// 全熱能力, W
	q_t := q_s + q_l

	if p == 0 {
		return EfficiencyResult{}, &DivisionByZeroError{Field: FieldPowerInput}
	}
	cop := q_t / p
	if math.IsInf(cop, 0) || math.IsNaN(cop) {
		return EfficiencyResult{}, &DomainError{Quantity: "cop", Value: cop, Reason: "coefficient of performance is not finite"}
	}

	return EfficiencyResult{
		SensibleCapacityW: q_s,
		LatentCapacityW:   q_l,
		TotalCapacityW:    q_t,
		COP:               cop,
		EER:               cop * btuhPerWatt,
		AirflowM3h:        v,
		PowerW:            p,
		MassFlowRateKgS:   m,
		DeltaT:            delta_t,
		HumidityInGkg:     x_in,
		HumidityOutGkg:    x_out,
	}, nil
}

// Compute は入力文字列を解析してから ComputeEfficiency を呼ぶ。
func Compute(raw RawMeasurement) (EfficiencyResult, error) {
	in, err := ParseMeasurement(raw)
	if err != nil {
		return EfficiencyResult{}, err
	}
	return ComputeEfficiency(in)
}

// Rounded は表示用に小数点以下2桁に丸めた写しを返す。
func (r EfficiencyResult) Rounded() EfficiencyResult {
	return EfficiencyResult{
		SensibleCapacityW: round(r.SensibleCapacityW, 2),
		LatentCapacityW:   round(r.LatentCapacityW, 2),
		TotalCapacityW:    round(r.TotalCapacityW, 2),
		COP:               round(r.COP, 2),
		EER:               round(r.EER, 2),
		AirflowM3h:        round(r.AirflowM3h, 2),
		PowerW:            round(r.PowerW, 2),
		MassFlowRateKgS:   round(r.MassFlowRateKgS, 4),
		DeltaT:            round(r.DeltaT, 2),
		HumidityInGkg:     round(r.HumidityInGkg, 2),
		HumidityOutGkg:    round(r.HumidityOutGkg, 2),
	}
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

package efficiency

import (
	"fmt"
	"strings"
)

// FormatResult は計算結果を小数点以下2桁で5行に整形する。
func FormatResult(r EfficiencyResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sensible capacity: %.2f W\n", r.SensibleCapacityW)
	fmt.Fprintf(&b, "Latent capacity: %.2f W\n", r.LatentCapacityW)
	fmt.Fprintf(&b, "Total capacity: %.2f W\n", r.TotalCapacityW)
	fmt.Fprintf(&b, "COP: %.2f\n", r.COP)
	fmt.Fprintf(&b, "EER: %.2f\n", r.EER)
	return b.String()
}

/*
手計算の手順を数値を代入した形で出力する。

	Args:
	    r: ComputeEfficiency の計算結果

	Returns:
	    1. 質量流量 2. 顕熱能力 3. 潜熱能力 4. 全熱能力 5. COP の5段階の説明
*/
func ManualCalculation(r EfficiencyResult) string {
	var b strings.Builder

	b.WriteString("1. Mass flow rate:\n")
	b.WriteString("   Mass Flow Rate = (Airflow / 3600) x Density\n")
	fmt.Fprintf(&b, "   Mass Flow Rate = (%.2f / 3600) x %g = %.4f kg/s\n\n", r.AirflowM3h, rhoA, r.MassFlowRateKgS)

	b.WriteString("2. Sensible capacity:\n")
	b.WriteString("   Q_sensible = Mass Flow Rate x C_p x dT\n")
	fmt.Fprintf(&b, "   Q_sensible = %.4f x %g x %.2f x 1000 = %.2f W\n\n", r.MassFlowRateKgS, cA, r.DeltaT, r.SensibleCapacityW)

	b.WriteString("3. Latent capacity:\n")
	b.WriteString("   Q_latent = Mass Flow Rate x h_fg x dW\n")
	fmt.Fprintf(&b, "   Q_latent = %.4f x %g x ((%.4f - %.4f) / 1000) x 1000 = %.2f W\n\n",
		r.MassFlowRateKgS, lWtr, r.HumidityInGkg, r.HumidityOutGkg, r.LatentCapacityW)

	b.WriteString("4. Total capacity:\n")
	b.WriteString("   Q_total = Q_sensible + Q_latent\n")
	fmt.Fprintf(&b, "   Q_total = %.2f + %.2f = %.2f W\n\n", r.SensibleCapacityW, r.LatentCapacityW, r.TotalCapacityW)

	b.WriteString("5. Coefficient of performance:\n")
	b.WriteString("   COP = Q_total / Power_input\n")
	fmt.Fprintf(&b, "   COP = %.2f / %.2f = %.2f\n", r.TotalCapacityW, r.PowerW, r.COP)

	return b.String()
}

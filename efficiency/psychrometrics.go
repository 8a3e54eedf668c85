package efficiency

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

/*
飽和水蒸気圧を計算する。

	Args:
	    theta: 空気温度, degree C

	Returns:
	    飽和水蒸気圧, kPa

	Notes:
	    Tetens の式。theta <= -237.3 では分母が 0 以下になるため DomainError を返す。
*/
func SaturationVaporPressure(theta float64) (float64, error) {
	den := 237.3 + theta
	if math.IsNaN(theta) || den <= 0.0 {
		return 0, &DomainError{Quantity: "temperature", Value: theta, Reason: "saturation vapor pressure is undefined at or below -237.3 degC"}
	}

	return 0.6108 * math.Pow(10, 7.5*theta/den), nil
}

/*
相対湿度から絶対湿度を計算する。

	Args:
	    h: 相対湿度, %
	    theta: 空気温度, degree C

	Returns:
	    絶対湿度, g/kgDA

	Notes:
	    水蒸気圧が大気圧に達すると分母が 0 になるため DomainError を返す。
*/
func SpecificHumidity(h, theta float64) (float64, error) {
	p_vs, err := SaturationVaporPressure(theta)
	if err != nil {
		return 0, err
	}

	// 水蒸気圧, kPa
	p_v := h / 100 * p_vs

	den := AtmosphericPressure - p_v
	if den <= 0.0 {
		return 0, &DomainError{Quantity: "vapor pressure", Value: p_v, Reason: "vapor pressure reaches atmospheric pressure"}
	}

	// 絶対湿度, kg/kgDA
	x := molecularWeightRatio * p_v / den
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, &DomainError{Quantity: "vapor pressure", Value: p_v, Reason: "specific humidity is not finite"}
	}

	return x * 1000, nil
}

/*
絶対湿度から水蒸気圧を求める。

	Args:
	    x: 絶対湿度, g/kgDA

	Returns:
	    水蒸気圧, kPa
*/
func VaporPressure(x float64) float64 {
	x_k := x / 1000
	return AtmosphericPressure * x_k / (x_k + molecularWeightRatio)
}

/*
絶対湿度の列から水蒸気圧の列を求める。

	Args:
	    x_is: 絶対湿度, g/kgDA, [i]

	Returns:
	    水蒸気圧, kPa, [i]
*/
func VaporPressures(x_is mat.Vector) []float64 {
	p_v_is := make([]float64, x_is.Len())
	for i := 0; i < x_is.Len(); i++ {
		p_v_is[i] = VaporPressure(x_is.AtVec(i))
	}

	return p_v_is
}

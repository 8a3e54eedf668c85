package efficiency

// 空気の密度, kg/m3
const rhoA = 1.2

// 空気の比熱, kJ/kg K
const cA = 1.005

// 水の蒸発潜熱, kJ/kg
const lWtr = 2500.0

// 大気圧, kPa
const AtmosphericPressure = 101.325

// 水蒸気と乾き空気の分子量比
const molecularWeightRatio = 0.622

// 1 CFM を m3/h に換算する係数 (旧版の出力と一致させるため近似値のまま)
const cfmToM3h = 1.699

// 1 W あたりの BTU/h
const btuhPerWatt = 3.412

// 1時間の秒数
const secondsPerHour = 3600.0

package efficiency

import (
	"fmt"
	"strings"
)

// AirflowUnit は風量の単位。
type AirflowUnit string

const (
	AirflowM3h AirflowUnit = "m3/h"
	AirflowCFM AirflowUnit = "CFM"
)

// PowerUnit は消費電力の単位。
type PowerUnit string

const (
	PowerW    PowerUnit = "W"
	PowerBTUh PowerUnit = "BTU/h"
)

// ParseAirflowUnit は "m³/h", "m3/h", "CFM" を大文字小文字を区別せずに受け付ける。
func ParseAirflowUnit(s string) (AirflowUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m3/h", "m³/h", "m3h", "cmh":
		return AirflowM3h, nil
	case "cfm":
		return AirflowCFM, nil
	}
	return "", &InputError{Field: FieldAirflowUnit, Value: s, Err: fmt.Errorf("unknown airflow unit")}
}

// ParsePowerUnit は "W", "BTU/h" を大文字小文字を区別せずに受け付ける。
func ParsePowerUnit(s string) (PowerUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w":
		return PowerW, nil
	case "btu/h", "btuh", "btu/hr":
		return PowerBTUh, nil
	}
	return "", &InputError{Field: FieldPowerUnit, Value: s, Err: fmt.Errorf("unknown power unit")}
}

/*
風量を m3/h に換算する。

	Args:
	    v: 風量
	    unit: v の単位

	Returns:
	    風量, m3/h

	Notes:
	    値の範囲は検査しない。負値や 0 もそのまま返す。
*/
func NormalizeAirflow(v float64, unit AirflowUnit) (float64, error) {
	switch unit {
	case AirflowM3h:
		return v, nil
	case AirflowCFM:
		return v * cfmToM3h, nil
	}
	return 0, &InputError{Field: FieldAirflowUnit, Value: string(unit), Err: fmt.Errorf("unknown airflow unit")}
}

/*
消費電力を W に換算する。

	Args:
	    v: 消費電力
	    unit: v の単位

	Returns:
	    消費電力, W
*/
func NormalizePower(v float64, unit PowerUnit) (float64, error) {
	switch unit {
	case PowerW:
		return v, nil
	case PowerBTUh:
		return v / btuhPerWatt, nil
	}
	return 0, &InputError{Field: FieldPowerUnit, Value: string(unit), Err: fmt.Errorf("unknown power unit")}
}

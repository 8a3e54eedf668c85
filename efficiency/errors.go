package efficiency

import (
	"errors"
	"fmt"
)

var (
	// ErrInput は入力値が数値として解釈できない場合に errors.Is で一致する。
	ErrInput = errors.New("invalid input")

	// ErrDomain は式が定義域外となる場合に errors.Is で一致する。
	ErrDomain = errors.New("value outside physical domain")

	// ErrDivisionByZero は消費電力が 0 の場合に errors.Is で一致する。
	ErrDivisionByZero = errors.New("division by zero")
)

// InputError は入力欄の値が欠落しているか数値でないことを表す。
type InputError struct {
	Field string // 入力欄の名前
	Value string // 入力された文字列
	Err   error  // 解析時のエラー
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: missing value", e.Field)
	}
	return fmt.Sprintf("%s: invalid value %q", e.Field, e.Value)
}

func (e *InputError) Unwrap() error { return e.Err }

func (e *InputError) Is(target error) bool { return target == ErrInput }

// DomainError は物理的にありえない入力によって式が発散することを表す。
type DomainError struct {
	Quantity string
	Value    float64
	Reason   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s = %g: %s", e.Quantity, e.Value, e.Reason)
}

func (e *DomainError) Is(target error) bool { return target == ErrDomain }

// DivisionByZeroError は COP の分母となる消費電力が 0 であることを表す。
type DivisionByZeroError struct {
	Field string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s must be non-zero", e.Field)
}

func (e *DivisionByZeroError) Is(target error) bool { return target == ErrDivisionByZero }

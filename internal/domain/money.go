package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnitExp 최소 화폐 단위 자릿수 (1 BDT = 100 poisha)
const minorUnitExp = 2

// Currency 단일 통화
const Currency = "BDT"

// Money 금액 (최소 화폐 단위 정수)
//
// 할인 계산이 반복되어도 오차가 누적되지 않도록 저장과 계산 결과는 모두 정수로 유지하고,
// 비율 계산만 decimal로 수행한 뒤 다시 반올림한다.
type Money int64

// MoneyFromDecimal decimal 금액을 최소 단위로 변환 (소수 셋째 자리에서 반올림)
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(minorUnitExp).Round(0).IntPart())
}

// MoneyFromUnits 정수 통화 단위 금액 생성 (50000 -> 50000.00)
func MoneyFromUnits(units int64) Money {
	return Money(units * 100)
}

// ParseMoney "47500.00" 형태의 문자열 파싱
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d), nil
}

// Decimal 통화 단위 decimal 반환
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -minorUnitExp)
}

// String "47500.00"
func (m Money) String() string {
	return m.Decimal().StringFixed(minorUnitExp)
}

// MulPercent 금액 × percent / 100 (반올림)
func (m Money) MulPercent(percent decimal.Decimal) Money {
	return MoneyFromDecimal(m.Decimal().Mul(percent).Div(decimal.NewFromInt(100)))
}

// MarshalJSON 통화 단위 숫자로 직렬화
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON 숫자 또는 문자열 금액 역직렬화
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MaxMoney 큰 값 반환
func MaxMoney(a, b Money) Money {
	if a > b {
		return a
	}
	return b
}

// MinMoney 작은 값 반환
func MinMoney(a, b Money) Money {
	if a < b {
		return a
	}
	return b
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"47500.00", MoneyFromUnits(47500)},
		{" 12.5 ", Money(1250)},
		{"0.005", Money(1)},
		{"0.004", Money(0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMoney("12,50")
	assert.Error(t, err)
}

func TestMoney_MulPercent(t *testing.T) {
	assert.Equal(t, MoneyFromUnits(2500), MoneyFromUnits(50000).MulPercent(decimal.NewFromInt(5)))
	// 333.33 * 10% = 33.333 -> 33.33
	assert.Equal(t, Money(3333), Money(33333).MulPercent(decimal.NewFromInt(10)))
}

func TestMoney_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{Amount: MoneyFromUnits(25000)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":25000.00}`, string(raw))

	var in struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":22500,"b":"22500.50","c":null}`), &in))
	assert.Equal(t, MoneyFromUnits(22500), in.A)
	assert.Equal(t, Money(2250050), in.B)
	assert.Equal(t, Money(0), in.C)
}

func TestMinMaxMoney(t *testing.T) {
	assert.Equal(t, Money(5), MinMoney(5, 9))
	assert.Equal(t, Money(9), MaxMoney(5, 9))
}

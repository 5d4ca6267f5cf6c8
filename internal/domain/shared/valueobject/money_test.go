package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid inputs", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(19.99), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.99)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("42.50", USD)
	require.NoError(t, err)
	assert.Equal(t, "42.50 USD", m.String())

	_, err = NewMoneyFromString("not-a-number", USD)
	assert.Error(t, err)
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyUSDFromFloat(10.25)
	b := NewMoneyUSDFromFloat(5.75)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(16)))

	eur := Zero(EUR)
	_, err = a.Add(eur)
	assert.Error(t, err)
}

func TestMoney_Sub(t *testing.T) {
	a := NewMoneyUSDFromFloat(10)
	b := NewMoneyUSDFromFloat(4)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(6)))
}

func TestMoney_MulInt(t *testing.T) {
	unit := NewMoneyUSDFromFloat(20.00)
	total := unit.MulInt(2)
	assert.Equal(t, "40.00 USD", total.String())
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSDFromFloat(1).IsPositive())
	assert.True(t, NewMoneyUSDFromFloat(-1).IsNegative())
}

func TestMoney_Equal(t *testing.T) {
	assert.True(t, NewMoneyUSDFromFloat(5).Equal(NewMoneyUSDFromFloat(5)))
	assert.False(t, NewMoneyUSDFromFloat(5).Equal(Zero(EUR)))
}

func TestMoney_Round(t *testing.T) {
	m := NewMoneyUSDFromFloat(19.999)
	assert.Equal(t, "20.00 USD", m.Round().String())
}

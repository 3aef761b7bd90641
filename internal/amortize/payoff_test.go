package amortize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayoff_SingleDebtRegression(t *testing.T) {
	// 100,000 at 18% with a 3,000 minimum: interest starts at 1,500/month,
	// so the plan amortizes comfortably inside the cap.
	result, err := Payoff(PayoffInput{
		Debts: []Debt{
			{Name: "card", Balance: d("100000"), AnnualRatePercent: d("18"), MinPayment: d("3000")},
		},
		Strategy: Avalanche,
	})
	require.NoError(t, err)
	assert.False(t, result.NonAmortizing)
	assert.False(t, result.Capped)
	assert.Less(t, result.Months, 100, "payoff should land well under the cap")
	assert.Greater(t, result.Months, 30)
	require.Len(t, result.Order, 1)
	assert.Equal(t, "card", result.Order[0].Name)
}

func TestPayoff_ExtraPaymentNeverCostsInterest(t *testing.T) {
	base := PayoffInput{
		Debts: []Debt{
			{Name: "card", Balance: d("100000"), AnnualRatePercent: d("18"), MinPayment: d("3000")},
		},
		Strategy: Avalanche,
	}

	prevInterest := decimal.New(1, 15)
	for _, extra := range []string{"0", "500", "2000", "10000"} {
		in := base
		in.ExtraPayment = d(extra)
		result, err := Payoff(in)
		require.NoError(t, err)
		saved := prevInterest.Sub(result.TotalInterest)
		assert.False(t, saved.IsNegative(), "extra %s increased interest", extra)
		prevInterest = result.TotalInterest
	}
}

func TestPayoff_AvalancheTargetsHighestRate(t *testing.T) {
	in := PayoffInput{
		Debts: []Debt{
			{Name: "car", Balance: d("50000"), AnnualRatePercent: d("9"), MinPayment: d("1200")},
			{Name: "card", Balance: d("60000"), AnnualRatePercent: d("24"), MinPayment: d("1500")},
		},
		ExtraPayment: d("5000"),
		Strategy:     Avalanche,
	}
	result, err := Payoff(in)
	require.NoError(t, err)
	require.NotEmpty(t, result.Order)
	assert.Equal(t, "card", result.Order[0].Name, "avalanche must clear the 24%% debt first")
}

func TestPayoff_SnowballTargetsSmallestBalance(t *testing.T) {
	in := PayoffInput{
		Debts: []Debt{
			{Name: "card", Balance: d("60000"), AnnualRatePercent: d("24"), MinPayment: d("1500")},
			{Name: "personal", Balance: d("20000"), AnnualRatePercent: d("11"), MinPayment: d("800")},
		},
		ExtraPayment: d("4000"),
		Strategy:     Snowball,
	}
	result, err := Payoff(in)
	require.NoError(t, err)
	require.NotEmpty(t, result.Order)
	assert.Equal(t, "personal", result.Order[0].Name, "snowball must clear the smallest balance first")
}

func TestPayoff_AvalancheBeatsSnowballOnInterest(t *testing.T) {
	debts := []Debt{
		{Name: "card", Balance: d("80000"), AnnualRatePercent: d("30"), MinPayment: d("2000")},
		{Name: "car", Balance: d("80000"), AnnualRatePercent: d("8"), MinPayment: d("2000")},
	}

	avalanche, err := Payoff(PayoffInput{Debts: debts, ExtraPayment: d("3000"), Strategy: Avalanche})
	require.NoError(t, err)
	snowball, err := Payoff(PayoffInput{Debts: debts, ExtraPayment: d("3000"), Strategy: Snowball})
	require.NoError(t, err)

	assert.True(t, avalanche.TotalInterest.LessThanOrEqual(snowball.TotalInterest),
		"avalanche %s vs snowball %s", avalanche.TotalInterest, snowball.TotalInterest)
}

func TestPayoff_NonAmortizingBudget(t *testing.T) {
	// 2,000/month against 30,000/month of accrual.
	result, err := Payoff(PayoffInput{
		Debts: []Debt{
			{Name: "big", Balance: d("2000000"), AnnualRatePercent: d("18"), MinPayment: d("2000")},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.NonAmortizing)
	assert.True(t, result.Capped)
	assert.Equal(t, MaxPayoffMonths, result.Months)
}

func TestPayoff_CapTermination(t *testing.T) {
	// Budget barely above accrual: terminates at the cap with balances left.
	result, err := Payoff(PayoffInput{
		Debts: []Debt{
			{Name: "slow", Balance: d("1000000"), AnnualRatePercent: d("12"), MinPayment: d("10100")},
		},
		MaxMonths: 120,
	})
	require.NoError(t, err)
	assert.False(t, result.NonAmortizing)
	assert.True(t, result.Capped)
	assert.Equal(t, 120, result.Months)
}

func TestPayoff_ProgrammerErrors(t *testing.T) {
	_, err := Payoff(PayoffInput{})
	assert.Error(t, err)

	_, err = Payoff(PayoffInput{Debts: []Debt{{Name: "x", Balance: decimal.Zero}}})
	assert.Error(t, err)
}

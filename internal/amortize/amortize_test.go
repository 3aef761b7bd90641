package amortize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPlan_HomeLoanRegression(t *testing.T) {
	// 2,500,000 at 8.5% over 20 years, no prepayment.
	result, err := Plan(PlanInput{
		Principal:         d("2500000"),
		AnnualRatePercent: d("8.5"),
		TotalPeriods:      240,
	})
	require.NoError(t, err)
	require.False(t, result.NonAmortizing)
	require.Len(t, result.Schedule, 240)

	payment, _ := result.PeriodicPayment.Float64()
	assert.InDelta(t, 21695.68, payment, 1.0, "periodic payment")

	totalInterest, _ := result.TotalInterest.Float64()
	assert.InDelta(t, 2706963, totalInterest, 500, "total interest")

	final := result.Schedule[len(result.Schedule)-1]
	assert.True(t, final.RemainingBalance.IsZero(), "final balance must be zero, got %s", final.RemainingBalance)
	assert.False(t, result.PaidOffEarly)
}

func TestPlan_ConservationInvariants(t *testing.T) {
	cases := []struct {
		name      string
		principal string
		rate      string
		periods   int
	}{
		{"small personal loan", "50000", "12", 36},
		{"car loan", "800000", "9.25", 84},
		{"mortgage", "2500000", "8.5", 240},
		{"long low rate", "1000000", "2", 360},
	}

	cent := d("1")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Plan(PlanInput{
				Principal:         d(tc.principal),
				AnnualRatePercent: d(tc.rate),
				TotalPeriods:      tc.periods,
			})
			require.NoError(t, err)

			principalSum := decimal.Zero
			interestSum := decimal.Zero
			lastPeriod := 0
			for _, e := range result.Schedule {
				require.Greater(t, e.Period, lastPeriod, "periods must strictly increase")
				lastPeriod = e.Period
				require.False(t, e.RemainingBalance.IsNegative(), "balance must stay non-negative")

				principalSum = principalSum.Add(e.PrincipalComponent)
				interestSum = interestSum.Add(e.InterestComponent)

				split := e.PrincipalComponent.Add(e.InterestComponent)
				assert.True(t, split.Equal(e.Payment), "payment split mismatch at period %d", e.Period)
			}

			assert.True(t, principalSum.Sub(d(tc.principal)).Abs().LessThan(cent),
				"sum of principal components %s must equal principal", principalSum)
			assert.True(t, interestSum.Sub(result.TotalInterest).Abs().LessThan(cent),
				"total interest must match schedule")
			assert.True(t, result.TotalPayment.Equal(d(tc.principal).Add(result.TotalInterest)),
				"total payment must equal principal plus interest")
		})
	}
}

func TestPlan_ZeroRateStraightLine(t *testing.T) {
	result, err := Plan(PlanInput{
		Principal:         d("120000"),
		AnnualRatePercent: decimal.Zero,
		TotalPeriods:      24,
	})
	require.NoError(t, err)
	assert.True(t, result.PeriodicPayment.Equal(d("5000")), "payment = %s", result.PeriodicPayment)
	assert.True(t, result.TotalInterest.IsZero())
	assert.Len(t, result.Schedule, 24)
	assert.True(t, result.Schedule[23].RemainingBalance.IsZero())
}

func TestPlan_ExtraPaymentMonotonicity(t *testing.T) {
	base := PlanInput{
		Principal:         d("1000000"),
		AnnualRatePercent: d("10"),
		TotalPeriods:      120,
	}

	prevLen := MaxScheduleEntries
	prevInterest := decimal.New(1, 15)
	for _, extra := range []string{"0", "1000", "5000", "20000"} {
		in := base
		in.ExtraPayment = d(extra)
		in.ExtraEvery = ExtraMonthly

		result, err := Plan(in)
		require.NoError(t, err)

		if len(result.Schedule) > prevLen {
			t.Errorf("extra %s: schedule grew from %d to %d", extra, prevLen, len(result.Schedule))
		}
		if result.TotalInterest.GreaterThan(prevInterest) {
			t.Errorf("extra %s: interest grew from %s to %s", extra, prevInterest, result.TotalInterest)
		}
		prevLen = len(result.Schedule)
		prevInterest = result.TotalInterest
	}
}

func TestPlan_YearlyExtraPayment(t *testing.T) {
	result, err := Plan(PlanInput{
		Principal:         d("500000"),
		AnnualRatePercent: d("9"),
		TotalPeriods:      120,
		ExtraPayment:      d("25000"),
		ExtraEvery:        ExtraYearly,
	})
	require.NoError(t, err)
	assert.True(t, result.PaidOffEarly)
	assert.Less(t, len(result.Schedule), 120)

	// Period 12 carries the extra principal, period 11 does not.
	p11 := result.Schedule[10]
	p12 := result.Schedule[11]
	assert.True(t, p12.PrincipalComponent.Sub(p11.PrincipalComponent).GreaterThan(d("24000")),
		"yearly extra not applied at period 12")
}

func TestPlan_NonAmortizingOverride(t *testing.T) {
	// Interest accrues 7,500/month; a 5,000 payment can never amortize.
	result, err := Plan(PlanInput{
		Principal:         d("1000000"),
		AnnualRatePercent: d("9"),
		TotalPeriods:      120,
		PaymentOverride:   d("5000"),
	})
	require.NoError(t, err)
	assert.True(t, result.NonAmortizing)
	assert.Empty(t, result.Schedule)
}

func TestPlan_YearlyExtraRescuesLowOverride(t *testing.T) {
	// Interest accrues 1,000/month against a 500 override, but the yearly
	// 50,000 prepayments retire the loan anyway.
	result, err := Plan(PlanInput{
		Principal:         d("100000"),
		AnnualRatePercent: d("12"),
		TotalPeriods:      120,
		PaymentOverride:   d("500"),
		ExtraPayment:      d("50000"),
		ExtraEvery:        ExtraYearly,
	})
	require.NoError(t, err)
	assert.False(t, result.NonAmortizing)
	assert.True(t, result.PaidOffEarly)
	assert.Less(t, len(result.Schedule), 48)
	assert.True(t, result.Schedule[len(result.Schedule)-1].RemainingBalance.IsZero())
}

func TestPlan_YearlyExtraBelowAccrualStaysNonAmortizing(t *testing.T) {
	// Even with the extra applied, 500 + 400 never beats the 1,000 accrual.
	result, err := Plan(PlanInput{
		Principal:         d("100000"),
		AnnualRatePercent: d("12"),
		TotalPeriods:      120,
		PaymentOverride:   d("500"),
		ExtraPayment:      d("400"),
		ExtraEvery:        ExtraYearly,
	})
	require.NoError(t, err)
	assert.True(t, result.NonAmortizing)
	assert.Empty(t, result.Schedule)
}

func TestPlan_ProgrammerErrors(t *testing.T) {
	_, err := Plan(PlanInput{Principal: decimal.Zero, TotalPeriods: 12})
	assert.Error(t, err)

	_, err = Plan(PlanInput{Principal: d("1000"), TotalPeriods: 0})
	assert.Error(t, err)
}

func TestPeriodicPayment_ZeroPeriods(t *testing.T) {
	got := PeriodicPayment(d("1000"), d("10"), 0, 12)
	assert.True(t, got.IsZero())
}

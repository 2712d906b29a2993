package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreHealth_AllZero(t *testing.T) {
	report := ScoreHealth(HealthInput{})

	assert.Equal(t, 0.0, report.SavingRatio)
	assert.Equal(t, 100.0, report.ExpenseRatio)
	assert.Equal(t, 0.0, report.NetCashflow)
	assert.Equal(t, 20, report.HealthScore)
	assert.Equal(t, LevelCritical, report.Level)
	assert.Equal(t, []string{
		"Saving progress: 0% dari target.",
		"Expense ratio: 100% dari income bulan ini.",
		"Net cashflow bulan ini: Rp 0.",
	}, report.Insights)
	assert.Equal(t, []string{actionReduceSpending, actionIncreaseSavings}, report.Actions)
}

func TestScoreHealth_HalfSpentFullySaved(t *testing.T) {
	report := ScoreHealth(HealthInput{
		MonthlyIncome:  1_000_000,
		MonthlyExpense: 500_000,
		SavingsTarget:  1_000_000,
		SavingsCurrent: 1_000_000,
	})

	assert.Equal(t, 100.0, report.SavingRatio)
	assert.Equal(t, 50.0, report.ExpenseRatio)
	assert.Equal(t, 500_000.0, report.NetCashflow)
	// 45 + 17.5 + 20 = 82.5 rounds half up
	assert.Equal(t, 83, report.HealthScore)
	assert.Equal(t, LevelGood, report.Level)
	assert.Equal(t, "Net cashflow bulan ini: Rp 500.000.", report.Insights[2])
	assert.Equal(t, []string{actionMaintain}, report.Actions)
}

func TestScoreHealth_NegativeCashflow(t *testing.T) {
	report := ScoreHealth(HealthInput{
		MonthlyIncome:  1_000_000,
		MonthlyExpense: 1_500_000,
		SavingsTarget:  2_000_000,
		SavingsCurrent: 500_000,
	})

	assert.Equal(t, 25.0, report.SavingRatio)
	assert.Equal(t, 150.0, report.ExpenseRatio)
	assert.Equal(t, -500_000.0, report.NetCashflow)
	// saving 25*0.45 + spending 0 + cashflow 50*0.2
	assert.Equal(t, 21, report.HealthScore)
	assert.Equal(t, LevelCritical, report.Level)
	assert.Equal(t, "Net cashflow bulan ini: Rp -500.000.", report.Insights[2])
	assert.Equal(t, []string{actionReduceSpending, actionIncreaseSavings, actionFixCashflow}, report.Actions)
}

func TestScoreHealth_ExpenseRatioClampedAt200(t *testing.T) {
	report := ScoreHealth(HealthInput{MonthlyIncome: 100, MonthlyExpense: 1_000})
	assert.Equal(t, 200.0, report.ExpenseRatio)
}

func TestScoreHealth_ExpenseWithoutIncome(t *testing.T) {
	report := ScoreHealth(HealthInput{MonthlyExpense: 50})

	assert.Equal(t, 100.0, report.ExpenseRatio)
	assert.Equal(t, -50.0, report.NetCashflow)
	// |net|/max(income,1) = 50 -> cashflow clamps to 0
	assert.Equal(t, 0, report.HealthScore)
}

func TestScoreHealth_SavingRatioClampedAt100(t *testing.T) {
	report := ScoreHealth(HealthInput{SavingsTarget: 100, SavingsCurrent: 400})
	assert.Equal(t, 100.0, report.SavingRatio)
}

func TestScoreHealth_Excellent(t *testing.T) {
	report := ScoreHealth(HealthInput{
		MonthlyIncome:  10_000_000,
		MonthlyExpense: 2_000_000,
		SavingsTarget:  5_000_000,
		SavingsCurrent: 5_000_000,
	})

	// 45 + 80*0.35 + 20 = 93
	assert.Equal(t, 93, report.HealthScore)
	assert.Equal(t, LevelExcellent, report.Level)
}

func TestScoreHealth_MonotonicInSavings(t *testing.T) {
	base := HealthInput{MonthlyIncome: 3_000_000, MonthlyExpense: 2_100_000, SavingsTarget: 10_000_000}

	previous := -1
	for current := 0.0; current <= base.SavingsTarget; current += 250_000 {
		in := base
		in.SavingsCurrent = current
		score := ScoreHealth(in).HealthScore
		require.GreaterOrEqual(t, score, previous, "savings current %v", current)
		previous = score
	}
}

func TestScoreHealth_ActionsNeverEmpty(t *testing.T) {
	values := []float64{0, 1, 50, 99.5, 1_000, 1e9}
	for _, income := range values {
		for _, expense := range values {
			for _, target := range values {
				for _, current := range values {
					report := ScoreHealth(HealthInput{
						MonthlyIncome:  income,
						MonthlyExpense: expense,
						SavingsTarget:  target,
						SavingsCurrent: current,
					})
					require.NotEmpty(t, report.Actions)
					require.GreaterOrEqual(t, report.HealthScore, 0)
					require.LessOrEqual(t, report.HealthScore, 100)
				}
			}
		}
	}
}

func TestLevelFor_Partition(t *testing.T) {
	for score := 0; score <= 100; score++ {
		level := LevelFor(score)
		switch {
		case score >= 85:
			assert.Equal(t, LevelExcellent, level, "score %d", score)
		case score >= 70:
			assert.Equal(t, LevelGood, level, "score %d", score)
		case score >= 50:
			assert.Equal(t, LevelWarning, level, "score %d", score)
		default:
			assert.Equal(t, LevelCritical, level, "score %d", score)
		}
	}

	assert.Equal(t, LevelWarning, LevelFor(50))
	assert.Equal(t, LevelCritical, LevelFor(49))
	assert.Equal(t, LevelGood, LevelFor(84))
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 83.0, RoundHalfUp(82.5))
	assert.Equal(t, 82.0, RoundHalfUp(82.49))
	assert.Equal(t, 1.0, RoundHalfUp(0.5))
	assert.Equal(t, 0.0, RoundHalfUp(-0.5))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(10, 0))
	assert.Equal(t, 50, Percent(50, 100))
	assert.Equal(t, 34, Percent(1, 2.94))
}

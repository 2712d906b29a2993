package finance

import (
	"fmt"
	"math"
)

// HealthLevel is the qualitative bucket of a health score.
type HealthLevel string

const (
	LevelExcellent HealthLevel = "Excellent"
	LevelGood      HealthLevel = "Good"
	LevelWarning   HealthLevel = "Warning"
	LevelCritical  HealthLevel = "Critical"
)

// Sub-score weights. They sum to 1.
const (
	SavingWeight   = 0.45
	SpendingWeight = 0.35
	CashflowWeight = 0.20
)

// Level cut-offs, evaluated from the top.
const (
	ExcellentMinScore = 85
	GoodMinScore      = 70
	WarningMinScore   = 50
)

const (
	actionReduceSpending  = "Kurangi pengeluaran tidak wajib minimal 10% bulan depan."
	actionIncreaseSavings = "Naikkan setoran tabungan rutin untuk percepat target."
	actionFixCashflow     = "Pastikan pemasukan lebih besar dari pengeluaran bulan berikutnya."
	actionMaintain        = "Pertahankan pola saat ini, kondisi keuangan sudah stabil."
)

// HealthInput holds the monthly aggregates a score is computed from.
type HealthInput struct {
	MonthlyIncome  float64 `json:"monthly_income"`
	MonthlyExpense float64 `json:"monthly_expense"`
	SavingsTarget  float64 `json:"savings_target"`
	SavingsCurrent float64 `json:"savings_current"`
}

// HealthReport is the outcome of ScoreHealth.
type HealthReport struct {
	HealthScore  int         `json:"health_score"`
	Level        HealthLevel `json:"level"`
	SavingRatio  float64     `json:"saving_ratio"`
	ExpenseRatio float64     `json:"expense_ratio"`
	NetCashflow  float64     `json:"net_cashflow"`
	Insights     []string    `json:"insights"`
	Actions      []string    `json:"actions"`
}

// ScoreHealth computes the composite 0-100 financial health score.
func ScoreHealth(in HealthInput) HealthReport {
	savingRatio := 0.0
	if in.SavingsTarget > 0 {
		savingRatio = clamp(in.SavingsCurrent/in.SavingsTarget*100, 0, 100)
	}

	expenseRatio := 100.0
	if in.MonthlyIncome > 0 {
		expenseRatio = clamp(in.MonthlyExpense/in.MonthlyIncome*100, 0, 200)
	}

	net := in.MonthlyIncome - in.MonthlyExpense

	savingScore := savingRatio
	spendingScore := clamp(100-expenseRatio, 0, 100)
	cashflowScore := 100.0
	if net < 0 {
		cashflowScore = clamp(100-math.Abs(net)/math.Max(in.MonthlyIncome, 1)*100, 0, 100)
	}

	score := RoundHalfUp(savingScore*SavingWeight + spendingScore*SpendingWeight + cashflowScore*CashflowWeight)

	return HealthReport{
		HealthScore:  int(score),
		Level:        LevelFor(int(score)),
		SavingRatio:  savingRatio,
		ExpenseRatio: expenseRatio,
		NetCashflow:  net,
		Insights: []string{
			fmt.Sprintf("Saving progress: %d%% dari target.", int(RoundHalfUp(savingRatio))),
			fmt.Sprintf("Expense ratio: %d%% dari income bulan ini.", int(RoundHalfUp(expenseRatio))),
			fmt.Sprintf("Net cashflow bulan ini: %s.", FormatRupiah(net)),
		},
		Actions: healthActions(savingRatio, expenseRatio, net),
	}
}

// LevelFor maps a score to its level. The buckets do not overlap.
func LevelFor(score int) HealthLevel {
	switch {
	case score >= ExcellentMinScore:
		return LevelExcellent
	case score >= GoodMinScore:
		return LevelGood
	case score >= WarningMinScore:
		return LevelWarning
	default:
		return LevelCritical
	}
}

func healthActions(savingRatio, expenseRatio, net float64) []string {
	actions := make([]string, 0, 3)
	if expenseRatio > 80 {
		actions = append(actions, actionReduceSpending)
	}
	if savingRatio < 50 {
		actions = append(actions, actionIncreaseSavings)
	}
	if net < 0 {
		actions = append(actions, actionFixCashflow)
	}
	if len(actions) == 0 {
		actions = append(actions, actionMaintain)
	}
	return actions
}

// RoundHalfUp rounds to the nearest integer with ties going towards +Inf.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Percent returns round-half-up part/whole*100, or 0 when whole is not positive.
func Percent(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(RoundHalfUp(part / whole * 100))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

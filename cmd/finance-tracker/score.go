package main

import (
	"fmt"

	"finance-tracker/internal/cli"
	"finance-tracker/internal/finance"

	"github.com/spf13/cobra"
)

var (
	flagIncome  float64
	flagExpense float64
	flagTarget  float64
	flagCurrent float64
	flagLang    string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score monthly finances and print the saving warning",
	RunE:  runScore,
}

var warningCmd = &cobra.Command{
	Use:   "warning",
	Short: "Print the saving warning for a savings goal",
	RunE:  runWarning,
}

func init() {
	scoreCmd.Flags().Float64Var(&flagIncome, "income", 0, "Monthly income")
	scoreCmd.Flags().Float64Var(&flagExpense, "expense", 0, "Monthly expense")
	scoreCmd.Flags().Float64Var(&flagTarget, "target", 0, "Savings target")
	scoreCmd.Flags().Float64Var(&flagCurrent, "current", 0, "Current savings")
	scoreCmd.Flags().StringVar(&flagLang, "lang", string(finance.DefaultLanguage), "Warning language (id or en)")

	warningCmd.Flags().Float64Var(&flagTarget, "target", 0, "Savings target")
	warningCmd.Flags().Float64Var(&flagCurrent, "current", 0, "Current savings")
	warningCmd.Flags().StringVar(&flagLang, "lang", string(finance.DefaultLanguage), "Warning language (id or en)")
	_ = warningCmd.MarkFlagRequired("target")
	_ = warningCmd.MarkFlagRequired("current")

	rootCmd.AddCommand(scoreCmd, warningCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	in := finance.HealthInput{
		MonthlyIncome:  flagIncome,
		MonthlyExpense: flagExpense,
		SavingsTarget:  flagTarget,
		SavingsCurrent: flagCurrent,
	}
	report := finance.ScoreHealth(in)
	message, ok := finance.SavingWarningIn(finance.ParseLanguage(flagLang), flagCurrent, flagTarget)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle("FINANCIAL HEALTH"))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderHealthReport(in, report))
	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderWarning(message, ok))
	return nil
}

func runWarning(cmd *cobra.Command, _ []string) error {
	message, ok := finance.SavingWarningIn(finance.ParseLanguage(flagLang), flagCurrent, flagTarget)
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderWarning(message, ok))
	return nil
}

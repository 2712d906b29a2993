package main

import (
	"errors"
	"fmt"
	"strings"

	"finance-tracker/internal/config"
	"finance-tracker/internal/dto"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	flagSeedEmail   string
	flagSeedCount   int
	flagSeedSavings int
	flagSeedMonths  int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo transactions and savings targets for a user",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&flagSeedEmail, "email", "", "Email of the user to seed (required)")
	seedCmd.Flags().IntVar(&flagSeedCount, "count", services.DefaultSeedTransactions, "Number of transactions")
	seedCmd.Flags().IntVar(&flagSeedSavings, "savings", services.DefaultSeedSavings, "Number of savings targets")
	seedCmd.Flags().IntVar(&flagSeedMonths, "months", services.DefaultSeedMonths, "Months of history to spread transactions over")
	_ = seedCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	logger := newLogger(cfg.App.LogLevel, false)

	app, err := newApplication(cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	defer app.Close()

	email := strings.ToLower(strings.TrimSpace(flagSeedEmail))
	user, err := app.repos.users.GetByEmail(email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("no user registered with email %s", email)
	}
	if err != nil {
		return err
	}

	result, err := app.services.demoData.Seed(user.ID, &dto.SeedRequest{
		Transactions: flagSeedCount,
		Savings:      flagSeedSavings,
		Months:       flagSeedMonths,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d transactions and %d savings targets for %s\n",
		result.Transactions, result.Savings, user.Email)
	return nil
}

package services

import (
	"testing"
	"time"

	"finance-tracker/internal/database"
	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoDataService_Seed(t *testing.T) {
	db := database.SetupTestDB(t)
	user := database.CreateTestUser(t, db, "demo@example.com")

	transactionRepo := repositories.NewTransactionRepository(db.DB)
	savingsRepo := repositories.NewSavingsRepository(db.DB)

	service := NewDemoDataService(transactionRepo, savingsRepo, 42, nil).(*DemoDataService)
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	response, err := service.Seed(user.ID, &dto.SeedRequest{Transactions: 30, Savings: 2, Months: 3})
	require.NoError(t, err)
	assert.Equal(t, 30, response.Transactions)
	assert.Equal(t, 2, response.Savings)

	transactions, total, err := transactionRepo.GetWithFilters(models.TransactionFilters{UserID: user.ID, Scope: models.ScopePersonal})
	require.NoError(t, err)
	assert.Equal(t, int64(30), total)

	salaries := 0
	start := now.AddDate(0, -3, 0)
	for _, tx := range transactions {
		assert.Equal(t, user.ID, tx.CreatedBy)
		assert.True(t, tx.Amount.IsPositive())
		assert.False(t, tx.CreatedAt.Before(start), "created_at %s before window", tx.CreatedAt)
		assert.False(t, tx.CreatedAt.After(now), "created_at %s after window", tx.CreatedAt)
		if tx.Category == models.CategorySalary {
			salaries++
			assert.Equal(t, models.TransactionTypeIncome, tx.Type)
			assert.Equal(t, 25, tx.CreatedAt.Day())
		}
	}
	// 25 Feb, 25 Mar and 25 Apr fall inside 10 Feb - 10 May
	assert.Equal(t, 3, salaries)

	targets, err := savingsRepo.List(models.SavingsFilters{UserID: user.ID, Scope: models.ScopePersonal})
	require.NoError(t, err)
	require.Len(t, targets, 2)
	for _, target := range targets {
		assert.True(t, target.TargetAmount.IsPositive())
		assert.False(t, target.CurrentAmount.IsNegative())
	}
}

func TestDemoDataService_Defaults(t *testing.T) {
	db := database.SetupTestDB(t)
	user := database.CreateTestUser(t, db, "defaults@example.com")

	service := NewDemoDataService(repositories.NewTransactionRepository(db.DB), repositories.NewSavingsRepository(db.DB), 7, nil)

	response, err := service.Seed(user.ID, &dto.SeedRequest{})

	require.NoError(t, err)
	assert.Equal(t, DefaultSeedTransactions, response.Transactions)
	assert.Equal(t, DefaultSeedSavings, response.Savings)
}

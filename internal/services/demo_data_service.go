package services

import (
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultSeedTransactions = 40
	DefaultSeedSavings      = 3
	DefaultSeedMonths       = 3

	salaryDay  = 25
	salaryHour = 9
)

type merchant struct {
	Name     string
	Category string
}

type amountRange struct {
	min, max float64
}

var demoMerchants = []merchant{
	{"Indomaret", models.CategoryGroceries},
	{"Alfamart", models.CategoryGroceries},
	{"Superindo", models.CategoryGroceries},
	{"Pasar Minggu", models.CategoryGroceries},
	{"PLN", models.CategoryUtilities},
	{"PDAM", models.CategoryUtilities},
	{"IndiHome", models.CategoryUtilities},
	{"Telkomsel", models.CategoryUtilities},
	{"Netflix", models.CategoryEntertainment},
	{"Spotify", models.CategoryEntertainment},
	{"CGV", models.CategoryEntertainment},
	{"Gojek", models.CategoryTransportation},
	{"Grab", models.CategoryTransportation},
	{"Pertamina", models.CategoryTransportation},
	{"KRL Commuter", models.CategoryTransportation},
	{"Kimia Farma", models.CategoryHealthcare},
	{"Guardian", models.CategoryHealthcare},
	{"Warteg Bahari", models.CategoryDining},
	{"Kopi Kenangan", models.CategoryDining},
	{"Sate Khas Senayan", models.CategoryDining},
	{"Tokopedia", models.CategoryShopping},
	{"Shopee", models.CategoryShopping},
	{"Uniqlo", models.CategoryShopping},
}

var demoAmountRanges = map[string]amountRange{
	models.CategoryGroceries:      {25_000, 750_000},
	models.CategoryUtilities:      {100_000, 1_200_000},
	models.CategoryEntertainment:  {50_000, 300_000},
	models.CategoryTransportation: {15_000, 400_000},
	models.CategoryHealthcare:     {30_000, 800_000},
	models.CategoryDining:         {20_000, 350_000},
	models.CategoryShopping:       {75_000, 2_500_000},
	models.CategorySalary:         {6_000_000, 18_000_000},
}

var demoSavingsNames = []string{
	"Dana Darurat",
	"Liburan Bali",
	"DP Rumah",
	"Pendidikan Anak",
	"Motor Baru",
	"Umroh",
	"Laptop Kerja",
}

// DemoDataService generates plausible personal records for a user
type DemoDataService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	savingsRepo     repositories.SavingsRepositoryInterface
	faker           *gofakeit.Faker
	logger          *slog.Logger

	now func() time.Time
}

// NewDemoDataService creates a generator. A zero seed seeds from the clock.
func NewDemoDataService(
	transactionRepo repositories.TransactionRepositoryInterface,
	savingsRepo repositories.SavingsRepositoryInterface,
	seed int64,
	logger *slog.Logger,
) DemoDataServiceInterface {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DemoDataService{
		transactionRepo: transactionRepo,
		savingsRepo:     savingsRepo,
		faker:           gofakeit.New(seed),
		logger:          logger,
		now:             time.Now,
	}
}

// Seed writes monthly salaries, random expenses and savings targets for
// userID spread over the last req.Months months.
func (s *DemoDataService) Seed(userID uuid.UUID, req *dto.SeedRequest) (*dto.SeedResponse, error) {
	count, savingsCount, months := req.Transactions, req.Savings, req.Months
	if count <= 0 {
		count = DefaultSeedTransactions
	}
	if savingsCount <= 0 {
		savingsCount = DefaultSeedSavings
	}
	if months <= 0 {
		months = DefaultSeedMonths
	}

	end := s.now()
	start := end.AddDate(0, -months, 0)

	transactions := s.salaryTransactions(userID, start, end)
	for len(transactions) < count {
		transactions = append(transactions, s.expenseTransaction(userID, start, end))
	}
	if len(transactions) > count {
		transactions = transactions[:count]
	}

	if err := s.transactionRepo.CreateBatch(transactions); err != nil {
		return nil, fmt.Errorf("failed to seed transactions: %w", err)
	}

	for i := 0; i < savingsCount; i++ {
		target := s.savingsTarget(userID, i, start, end)
		if err := s.savingsRepo.Create(target); err != nil {
			return nil, fmt.Errorf("failed to seed savings target: %w", err)
		}
	}

	s.logger.Info("demo data generated",
		"user_id", userID,
		"transactions", len(transactions),
		"savings", savingsCount,
		"months", months)

	return &dto.SeedResponse{
		Transactions: len(transactions),
		Savings:      savingsCount,
	}, nil
}

// salaryTransactions returns one salary per month on salaryDay within [start, end]
func (s *DemoDataService) salaryTransactions(userID uuid.UUID, start, end time.Time) []models.Transaction {
	base := s.amount(models.CategorySalary).Round(-5)
	employer := s.faker.Company()

	var transactions []models.Transaction
	for month := time.Date(start.Year(), start.Month(), salaryDay, salaryHour, 0, 0, 0, start.Location()); !month.After(end); month = month.AddDate(0, 1, 0) {
		if month.Before(start) {
			continue
		}
		transactions = append(transactions, models.Transaction{
			UserID:      userID,
			Scope:       models.ScopePersonal,
			Type:        models.TransactionTypeIncome,
			Amount:      base,
			Category:    models.CategorySalary,
			Description: "Gaji " + employer,
			CreatedBy:   userID,
			CreatedAt:   month,
		})
	}
	return transactions
}

func (s *DemoDataService) expenseTransaction(userID uuid.UUID, start, end time.Time) models.Transaction {
	m := demoMerchants[s.faker.Number(0, len(demoMerchants)-1)]
	return models.Transaction{
		UserID:      userID,
		Scope:       models.ScopePersonal,
		Type:        models.TransactionTypeExpense,
		Amount:      s.amount(m.Category),
		Category:    m.Category,
		Description: m.Name,
		CreatedBy:   userID,
		CreatedAt:   s.faker.DateRange(start, end),
	}
}

func (s *DemoDataService) savingsTarget(userID uuid.UUID, i int, start, end time.Time) *models.SavingsTarget {
	name := demoSavingsNames[i%len(demoSavingsNames)]
	if i >= len(demoSavingsNames) {
		name = fmt.Sprintf("%s %d", name, i/len(demoSavingsNames)+1)
	}

	target := decimal.NewFromInt(int64(s.faker.Number(10, 500)) * 100_000)
	current := target.Mul(decimal.NewFromFloat(s.faker.Float64Range(0, 1.1))).Round(-3)

	return &models.SavingsTarget{
		UserID:        userID,
		Scope:         models.ScopePersonal,
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: current,
		CreatedBy:     userID,
		CreatedAt:     s.faker.DateRange(start, end),
	}
}

// amount returns a random amount for category rounded to Rp 500
func (s *DemoDataService) amount(category string) decimal.Decimal {
	r, ok := demoAmountRanges[category]
	if !ok {
		r = amountRange{10_000, 200_000}
	}
	value := s.faker.Float64Range(r.min, r.max)
	return decimal.NewFromFloat(value).Div(decimal.NewFromInt(500)).Round(0).Mul(decimal.NewFromInt(500))
}

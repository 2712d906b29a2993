package services

import (
	"context"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshTokens(refreshToken string) (*dto.TokenResponse, error)
	Logout(accessToken string) error
	GetProfile(userID uuid.UUID) (*dto.UserProfileResponse, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
	GenerateSecurePassword() (string, error)
}

// AdminPolicyInterface decides which users may use the admin panel
type AdminPolicyInterface interface {
	IsAdmin(email string) bool
	Configured() bool
}

// TransactionServiceInterface manages the caller's personal transactions
type TransactionServiceInterface interface {
	CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	GetTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error)
	ListTransactions(userID uuid.UUID, query *dto.TransactionListQuery) ([]models.Transaction, int64, error)
	UpdateTransaction(userID, transactionID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uuid.UUID) error
}

// SavingsServiceInterface manages the caller's personal savings targets
type SavingsServiceInterface interface {
	CreateTarget(userID uuid.UUID, req *dto.CreateSavingsRequest) (*models.SavingsTarget, error)
	ListTargets(userID uuid.UUID) ([]models.SavingsTarget, error)
	UpdateTarget(userID, targetID uuid.UUID, req *dto.UpdateSavingsRequest) (*models.SavingsTarget, error)
	DeleteTarget(userID, targetID uuid.UUID) error
	Deposit(userID, targetID uuid.UUID, amount decimal.Decimal) (*models.SavingsTarget, error)
}

// FamilyServiceInterface manages families, memberships and shared records
type FamilyServiceInterface interface {
	CreateFamily(userID uuid.UUID, name string) (*dto.FamilyResponse, error)
	JoinFamily(userID uuid.UUID, inviteCode string) (*dto.FamilyResponse, error)
	LeaveFamily(userID uuid.UUID) error
	GetMyFamily(userID uuid.UUID) (*dto.FamilyResponse, error)
	GetMembership(userID uuid.UUID) (*models.FamilyMember, error)

	ListTransactions(userID uuid.UUID, query *dto.TransactionListQuery) ([]models.Transaction, int64, error)
	CreateTransaction(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uuid.UUID) error

	ListSavings(userID uuid.UUID) ([]models.SavingsTarget, error)
	CreateSavings(userID uuid.UUID, req *dto.CreateSavingsRequest) (*models.SavingsTarget, error)
	DeleteSavings(userID, targetID uuid.UUID) error

	GetSummary(userID uuid.UUID, month string) (*dto.FamilySummaryResponse, error)
}

type DashboardServiceInterface interface {
	GetDashboard(userID uuid.UUID, query *dto.DashboardQuery) (*dto.DashboardResponse, error)
}

type FinancialHealthServiceInterface interface {
	GetFinancialHealth(userID uuid.UUID, scope string) (*dto.FinancialHealthResponse, error)
}

// ActivityServiceInterface records and lists who changed which record
type ActivityServiceInterface interface {
	Record(entry *models.ActivityLog)
	ListByActor(actorID uuid.UUID, limit int) ([]models.ActivityLog, error)
	ListFamilyMonth(familyID uuid.UUID, start, end time.Time) ([]models.ActivityLog, error)
}

// ActivityPublisherInterface sends activity entries to other systems
type ActivityPublisherInterface interface {
	PublishActivity(ctx context.Context, entry *models.ActivityLog) error
	Close() error
}

// EventLoggerInterface writes domain events as structured log lines
type EventLoggerInterface interface {
	LogActivityRecorded(ctx context.Context, entry *models.ActivityLog)
	LogActivityPublishFailed(ctx context.Context, activityID uuid.UUID, errorMsg string)
	LogCircuitBreakerStateChange(ctx context.Context, service string, oldState, newState string)
	LogFamilyMembershipChange(ctx context.Context, familyID, userID uuid.UUID, event string)
}

type AdminServiceInterface interface {
	GetOverview() (*dto.AdminOverviewResponse, error)
	ListTableRows(table string) (*dto.AdminTableResponse, error)
	UpdateTableRow(table, id string, raw map[string]string) (models.TableRow, error)
	DeleteTableRow(table, id string) error
}

// DemoDataServiceInterface fills an account with generated records
type DemoDataServiceInterface interface {
	Seed(userID uuid.UUID, req *dto.SeedRequest) (*dto.SeedResponse, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
	Reset()
	GetFailureCount() int
}

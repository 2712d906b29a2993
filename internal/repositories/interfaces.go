package repositories

import (
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdateFailedLoginAttempts(user *models.User) error
	ResetFailedLoginAttempts(userID uuid.UUID) error
	UpdateLastLogin(userID uuid.UUID, at time.Time) error
	ListUsers(offset, limit int) ([]*models.User, int64, error)
	Count() (int64, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	CreateBatch(transactions []models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	Update(transaction *models.Transaction) error
	Delete(id uuid.UUID) error
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	GetTotals(filters models.TransactionFilters) (models.TransactionTotals, error)
	GetCategorySummary(filters models.TransactionFilters) ([]models.CategorySummary, error)
	GetRecent(limit int) ([]models.Transaction, error)
	Count() (int64, error)
}

// SavingsRepositoryInterface defines the contract for savings target operations
type SavingsRepositoryInterface interface {
	Create(target *models.SavingsTarget) error
	GetByID(id uuid.UUID) (*models.SavingsTarget, error)
	Update(target *models.SavingsTarget) error
	Delete(id uuid.UUID) error
	AddAmount(id uuid.UUID, amount decimal.Decimal) (*models.SavingsTarget, error)
	List(filters models.SavingsFilters) ([]models.SavingsTarget, error)
	GetTotals(filters models.SavingsFilters) (models.SavingsTotals, error)
	GetRecent(limit int) ([]models.SavingsTarget, error)
	Count() (int64, error)
}

// FamilyRepositoryInterface defines the contract for families and their memberships
type FamilyRepositoryInterface interface {
	Create(family *models.Family, owner *models.FamilyMember) error
	GetByID(id uuid.UUID) (*models.Family, error)
	GetByInviteCode(code string) (*models.Family, error)
	InviteCodeExists(code string) (bool, error)
	Count() (int64, error)

	AddMember(member *models.FamilyMember) error
	GetMembership(userID uuid.UUID) (*models.FamilyMember, error)
	ListMembers(familyID uuid.UUID) ([]models.FamilyMember, error)
	RemoveMember(userID uuid.UUID) error
}

// ActivityLogRepositoryInterface defines the contract for activity log operations
type ActivityLogRepositoryInterface interface {
	Create(log *models.ActivityLog) error
	ListByActor(actorID uuid.UUID, limit int) ([]models.ActivityLog, error)
	ListByFamily(familyID uuid.UUID, start, end time.Time, limit int) ([]models.ActivityLog, error)
}

// AdminTableRepositoryInterface gives raw row access to the tables exposed in
// the admin panel.
type AdminTableRepositoryInterface interface {
	ListRows(table string, limit int) ([]models.TableRow, error)
	GetRow(table, id string) (models.TableRow, error)
	UpdateRow(table, id string, values map[string]interface{}) error
	DeleteRow(table, id string) error
}

type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	Consume(tokenHash string, userID uuid.UUID) error
	RevokeAllForUser(userID uuid.UUID) error
	Prune(retention time.Duration) (int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for blacklisted token repository operations
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}

package repositories

import (
	"errors"
	"fmt"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrFamilyNotFound      = errors.New("family not found")
	ErrMembershipNotFound  = errors.New("family membership not found")
	ErrAlreadyFamilyMember = errors.New("user already belongs to a family")
	ErrInviteCodeCollision = errors.New("invite code already in use")
)

type familyRepository struct {
	db *gorm.DB
}

// NewFamilyRepository creates a repository for families and memberships
func NewFamilyRepository(db *gorm.DB) FamilyRepositoryInterface {
	return &familyRepository{db: db}
}

// Create inserts the family and its owner membership atomically
func (r *familyRepository) Create(family *models.Family, owner *models.FamilyMember) error {
	if family == nil || owner == nil {
		return errors.New("family and owner cannot be nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrInviteCodeCollision
			}
			return fmt.Errorf("failed to create family: %w", err)
		}

		owner.FamilyID = family.ID
		owner.Role = models.FamilyRoleOwner
		if err := tx.Create(owner).Error; err != nil {
			if isDuplicateKeyError(err) {
				return ErrAlreadyFamilyMember
			}
			return fmt.Errorf("failed to create owner membership: %w", err)
		}
		return nil
	})
}

func (r *familyRepository) GetByID(id uuid.UUID) (*models.Family, error) {
	family := &models.Family{ID: id}
	if err := r.db.First(family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	return family, nil
}

func (r *familyRepository) GetByInviteCode(code string) (*models.Family, error) {
	var family models.Family
	if err := r.db.Where("invite_code = ?", code).First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to get family by invite code: %w", err)
	}
	return &family, nil
}

func (r *familyRepository) InviteCodeExists(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Family{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check invite code: %w", err)
	}
	return count > 0, nil
}

func (r *familyRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Family{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count families: %w", err)
	}
	return count, nil
}

// AddMember inserts a membership. The unique user_id index enforces one
// family per user.
func (r *familyRepository) AddMember(member *models.FamilyMember) error {
	if member == nil {
		return errors.New("family member cannot be nil")
	}
	if err := r.db.Create(member).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrAlreadyFamilyMember
		}
		return fmt.Errorf("failed to add family member: %w", err)
	}
	return nil
}

// GetMembership returns the user's membership with its family loaded
func (r *familyRepository) GetMembership(userID uuid.UUID) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := r.db.Preload("Family").Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get family membership: %w", err)
	}
	return &member, nil
}

// ListMembers returns the members of a family with their users loaded,
// in join order
func (r *familyRepository) ListMembers(familyID uuid.UUID) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	if err := r.db.Preload("User").
		Where("family_id = ?", familyID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}
	return members, nil
}

func (r *familyRepository) RemoveMember(userID uuid.UUID) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.FamilyMember{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove family member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

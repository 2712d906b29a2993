package database

import (
	"fmt"
	"testing"

	"finance-tracker/internal/config"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var cleanupTables = []string{
	"activity_logs",
	"savings_targets",
	"transactions",
	"family_members",
	"families",
	"blacklisted_tokens",
	"refresh_tokens",
	"users",
}

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// each pooled connection would otherwise get its own in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hashed_password",
		DisplayName:  "Test User",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestFamily creates a family owned by owner with the given invite code.
func CreateTestFamily(t *testing.T, db *DB, owner *models.User, inviteCode string) *models.Family {
	t.Helper()

	family := &models.Family{
		Name:       "Test Family",
		InviteCode: inviteCode,
		CreatedBy:  owner.ID,
	}
	if err := db.Create(family).Error; err != nil {
		t.Fatalf("failed to create test family: %v", err)
	}

	AddTestMember(t, db, family.ID, owner.ID, models.FamilyRoleOwner)
	return family
}

func AddTestMember(t *testing.T, db *DB, familyID, userID uuid.UUID, role string) *models.FamilyMember {
	t.Helper()

	member := &models.FamilyMember{
		FamilyID: familyID,
		UserID:   userID,
		Role:     role,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test family member: %v", err)
	}
	return member
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	for _, table := range cleanupTables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}

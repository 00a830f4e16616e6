package config

import (
	"log"
	"time"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/pkg/password"

	"gorm.io/gorm"
)

// SeedUsers creates the default accounts on an empty database. Passwords come
// from env so production never ships the defaults.
func SeedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		username string
		email    string
		role     domain.Role
		passEnv  string
	}{
		{"superadmin", "superadmin@astrafin.example", domain.RoleSuperAdmin, "SEED_SUPERADMIN_PASSWORD"},
		{"admin", "admin@astrafin.example", domain.RoleAdmin, "SEED_ADMIN_PASSWORD"},
		{"rh", "rh@astrafin.example", domain.RoleRH, "SEED_RH_PASSWORD"},
		{"operator", "operator@astrafin.example", domain.RoleUser, "SEED_OPERATOR_PASSWORD"},
	}

	for _, d := range defaults {
		hashed, err := password.Hash(getEnv(d.passEnv, "changeme-"+d.username))
		if err != nil {
			return err
		}

		user := &models.User{
			Username: d.username,
			Email:    d.email,
			Password: hashed,
			Role:     d.role,
			IsActive: true,
		}
		if err := db.Create(user).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Default users seeded successfully")
	return nil
}

// SeedDemoData fills an empty dev database with a sample client file and
// expense so the API is explorable right after first boot. Never runs in prod.
func SeedDemoData(db *gorm.DB, cfg *Config) error {
	if !cfg.IsDev() {
		return nil
	}

	var count int64
	if err := db.Model(&models.ClientFile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var operator models.User
	if err := db.Where("username = ?", "operator").First(&operator).Error; err != nil {
		return err
	}

	file := &models.ClientFile{
		Reference:  "CF-DEMO001",
		ClientCode: "DEMO-001",
		Reason:     "Account opening",
		ClientType: "INDIVIDUAL",
		LastName:   "Durand",
		FirstName:  "Claire",
		Validation: domain.NewValidation(operator.ID),
	}
	if err := db.Create(file).Error; err != nil {
		return err
	}

	expense := &models.Expense{
		Amount:      42.50,
		Category:    "TRAVEL",
		ExpenseDate: time.Now(),
		Description: "Client visit, return train ticket",
		Validation:  domain.NewValidation(operator.ID),
	}
	if err := db.Create(expense).Error; err != nil {
		return err
	}

	log.Println("✅ Demo data seeded (dev mode)")
	return nil
}

package seeds

import (
	"errors"

	"gorm.io/gorm"

	smsService "github.com/nillpakhi2003-droid/saroyarsir/internals/features/sms/service"
	authService "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/auth/service"
	userModel "github.com/nillpakhi2003-droid/saroyarsir/internals/features/users/user/model"
	configs "github.com/nillpakhi2003-droid/saroyarsir/internals/configs"
	helper "github.com/nillpakhi2003-droid/saroyarsir/internals/helpers"
)

// SeedSuperUser guarantees one super_user account exists so a fresh
// database is reachable. Phone and password come from SUPER_USER_PHONE /
// SUPER_USER_PASSWORD.
func SeedSuperUser(db *gorm.DB) error {
	phone := helper.NormalizePhone(configs.GetEnv("SUPER_USER_PHONE", "01712345678"))
	if phone == "" {
		return errors.New("invalid SUPER_USER_PHONE")
	}

	var count int64
	if err := db.Model(&userModel.UserModel{}).
		Where("role = ?", userModel.RoleSuperUser).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := authService.HashPassword(configs.GetEnv("SUPER_USER_PASSWORD", "admin123"))
	if err != nil {
		return err
	}
	admin := userModel.UserModel{
		PhoneNumber:  phone,
		FirstName:    "Admin",
		Role:         userModel.RoleSuperUser,
		PasswordHash: hash,
		IsActive:     true,
	}
	return db.Create(&admin).Error
}

// SeedSMSTemplates materializes the default template set; LoadTemplates
// seeds on first read, so this just forces the row to exist up front.
func SeedSMSTemplates(db *gorm.DB) error {
	_, err := smsService.LoadTemplates(db)
	return err
}

package seed

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"assetdesk_backend/internal/model"
)

// SeedAdminUser creates the first operator account when the users table is
// empty, so a fresh deployment can be logged into at all.
func SeedAdminUser(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Could not hash admin password: %v", err)
		return
	}

	admin := model.User{
		Email:    adminEmail,
		Password: string(hashed),
		Name:     "Administrator",
		Role:     "admin",
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return
	}

	log.Println("Admin user seeded successfully!")
}

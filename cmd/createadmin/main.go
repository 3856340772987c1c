package main

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/dltpay/paygate/app/models"
	"github.com/dltpay/paygate/app/repository"
	"github.com/dltpay/paygate/internal/pkg/database"
	"github.com/dltpay/paygate/internal/pkg/env"
)

// Seeds the backoffice account. Safe to run repeatedly.
func main() {
	env.SetupEnvFile()
	database.SetupDatabase()
	repository.InitializeFactory(database.GetDB())

	username := env.GetEnv("ADMIN_USERNAME", "admin")
	password := env.GetEnv("ADMIN_PASSWORD", "password123")

	admins := repository.GetGlobalFactory().GetAdminRepository()

	if existing, err := admins.GetByUsername(username); err == nil {
		log.Printf("Admin %q already exists (id=%d), nothing to do", existing.Username, existing.ID)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up admin %q: %v", username, err)
	}

	admin, err := models.CreateAdmin(username, password)
	if err != nil {
		log.Fatalf("Failed to build admin account: %v", err)
	}
	if err := admins.Create(admin); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	log.Printf("Admin %q created (id=%d)", admin.Username, admin.ID)
}

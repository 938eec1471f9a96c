package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dimitrije/sweetshop-api/internal/config"
	"github.com/dimitrije/sweetshop-api/internal/database"
	"github.com/dimitrije/sweetshop-api/internal/models"
	"github.com/dimitrije/sweetshop-api/internal/services"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: promote-admin <email>")
		os.Exit(1)
	}

	email := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	profile, err := services.NewProfileService(db).SetRoleByEmail(ctx, email, models.RoleAdmin)
	if errors.Is(err, services.ErrUserNotFound) {
		log.Fatalf("No user found with email: %s", email)
	}
	if err != nil {
		log.Fatalf("Failed to update profile: %v", err)
	}

	fmt.Printf("Successfully promoted %s (%s) to admin\n", email, profile.ID)
}

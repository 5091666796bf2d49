package main

import (
	"flag"
	"log"

	"go-order-desk/internal/repository"
	"go-order-desk/internal/service"
	"go-order-desk/pkg/config"
	"go-order-desk/pkg/database"
	"go-order-desk/pkg/jwt"
)

func main() {
	cfg := config.Load("order-desk-reset-password")

	email := flag.String("email", cfg.Admin.Email, "operator email")
	password := flag.String("password", cfg.Admin.Password, "new password")
	flag.Parse()

	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	auth := service.NewAuthService(repository.NewOperatorRepo(db), jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpirationHours))
	if err := auth.ResetPassword(*email, *password); err != nil {
		log.Fatalf("❌ Failed to reset password for %s: %v", *email, err)
	}

	log.Printf("✅ Success! Password for %s has been reset", *email)
}

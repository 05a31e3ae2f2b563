package main

import (
	"log"

	"go-pos-inventory/internal/config"
	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/seed"
	"go-pos-inventory/pkg/database"
	"go-pos-inventory/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := pflag.StringP("email", "e", seed.AdminEmail, "staff email to reset")
	newPassword := pflag.StringP("password", "p", seed.AdminPassword, "new password (min 6 characters)")
	pflag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.LoadEnv()

	if len(*newPassword) < 6 {
		log.Fatalf("New password must be at least 6 characters")
	}

	zlog, err := logger.New(logger.Config{IsDevelopment: true, Level: "warn"})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}

	// 2. Setup Database
	db, err := database.ConnectDB(database.Config{
		URL:      cfg.Postgres.URL,
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Name:     cfg.Postgres.DBName,
		TimeZone: cfg.Postgres.TimeZone,
	}, zlog)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	staffRepo := repository.NewStaffRepo(db)

	// 3. Find staff member
	staff, err := staffRepo.FindByEmail(*email)
	if err != nil {
		log.Fatalf("Staff %s not found in database: %v", *email, err)
	}

	// 4. Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update
	if err := staffRepo.UpdatePassword(staff.ID, string(hashedPassword)); err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", staff.Email)
}

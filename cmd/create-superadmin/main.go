package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/database"
	"github.com/collegeabroad/backend/internal/logger"
	"github.com/collegeabroad/backend/internal/model"
	"github.com/collegeabroad/backend/internal/repository"
	"github.com/collegeabroad/backend/internal/validator"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// Bootstraps the first superadmin account. Further staff accounts are
// created through the superadmin-gated API.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	principalRepo := repository.NewPrincipalRepository(pool)

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Superadmin Account ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		fmt.Println("Error: A valid email is required")
		return
	}

	fmt.Print("Enter Mobile: ")
	mobile, _ := reader.ReadString('\n')
	mobile = strings.TrimSpace(mobile)

	fmt.Print("Enter Password: ")
	pwBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	password := string(pwBytes)
	if !validator.PasswordMeetsPolicy(password) {
		fmt.Println("Error: Password must be at least 6 characters with an uppercase letter and a special character")
		return
	}

	fmt.Print("Confirm Password: ")
	confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if password != string(confirmBytes) {
		fmt.Println("Error: Passwords do not match")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		return
	}

	p := &model.Principal{
		Role:         model.RoleSuperadmin,
		Name:         name,
		Email:        email,
		Mobile:       mobile,
		PasswordHash: string(hash),
		IsVerified:   true,
	}
	if err := principalRepo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, repository.ErrDuplicateName) {
			fmt.Println("Error: A superadmin with this email or name already exists")
			return
		}
		fmt.Printf("Error creating superadmin: %v\n", err)
		return
	}

	fmt.Printf("Superadmin created with ID %d\n", p.ID)
}

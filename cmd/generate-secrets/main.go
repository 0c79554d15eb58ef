package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/harborview/hotel-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := flag.String("password", "", "optional staff password to hash for seeding")
	flag.Parse()

	fmt.Println("===========================================")
	fmt.Println("JWT Secret Generator for Harborview")
	fmt.Println("===========================================")
	fmt.Println()

	accessSecret, refreshSecret, err := utils.GenerateJWTSecrets()
	if err != nil {
		log.Fatalf("Failed to generate secrets: %v", err)
	}

	fmt.Println("Add these to your .env file or deployment secrets:")
	fmt.Println()
	fmt.Printf("JWT_SECRET=%s\n", accessSecret)
	fmt.Printf("JWT_REFRESH_SECRET=%s\n", refreshSecret)
	fmt.Println()

	if *password != "" {
		hash, err := utils.HashPassword(*password, bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println("Staff password hash for the employees table:")
		fmt.Println()
		fmt.Println(hash)
		fmt.Println()
	}

	fmt.Println("Keep these secrets safe and never commit them to version control.")
	fmt.Println("===========================================")
}

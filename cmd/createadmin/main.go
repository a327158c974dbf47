package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"championsite-backend-go/internal/config"
	"championsite-backend-go/internal/db"
	"championsite-backend-go/internal/migrations"
	"championsite-backend-go/internal/services"

	"github.com/joho/godotenv"
)

// Seeds the first admin account. Safe to run again for additional accounts;
// duplicate emails are rejected.
func main() {
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	role := flag.String("role", services.RoleSuperAdmin, "Admin or SuperAdmin")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := migrations.Apply(database, "migrations"); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	tokens := services.TokenService{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    time.Duration(cfg.TokenTTLSeconds) * time.Second,
	}
	admin, err := services.CreateAdmin(database, tokens, *name, *email, *password, *role)
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}
	fmt.Printf("created %s admin %s (%s)\n", admin.Role, admin.Email, admin.ID)
}

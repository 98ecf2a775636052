package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB *sql.DB

	// BillingStart is the global billing floor: no student owes fees
	// for months before this date, regardless of when they joined.
	// Zero means no floor is configured.
	BillingStart time.Time
}

var AppConfig *Config

// LoadEnv loads variables from a local .env file if one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	psqlInfo := os.Getenv("DATABASE_URL")
	if psqlInfo == "" {
		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "maktab"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig = &Config{
		DB:           db,
		BillingStart: loadBillingStart(),
	}
	log.Println("Database connected successfully")
}

// loadBillingStart reads the BILLING_START env var, accepting either a
// full date (2024-04-01) or a month token (2024-04).
func loadBillingStart() time.Time {
	raw := os.Getenv("BILLING_START")
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, raw); err == nil {
			log.Printf("Billing floor configured: %s", t.Format("2006-01-02"))
			return t
		}
	}
	log.Printf("Warning: ignoring malformed BILLING_START %q", raw)
	return time.Time{}
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// GetBillingStart returns the configured billing floor, zero if none.
func GetBillingStart() time.Time {
	return AppConfig.BillingStart
}

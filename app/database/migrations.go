package database

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			role VARCHAR(30) NOT NULL DEFAULT 'staff',
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS class_levels (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT UNIQUE NOT NULL,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS time_slots (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			label TEXT UNIQUE NOT NULL,
			start_time VARCHAR(5),
			end_time VARCHAR(5),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS class_sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			class_level_id UUID NOT NULL REFERENCES class_levels(id),
			time_slot_id UUID NOT NULL REFERENCES time_slots(id),
			teacher_id UUID REFERENCES users(id),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			UNIQUE (class_level_id, time_slot_id)
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			roll_number TEXT UNIQUE NOT NULL,
			form_no TEXT UNIQUE NOT NULL,
			gr_number TEXT UNIQUE NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			gender VARCHAR(10),
			guardian_name TEXT,
			phone VARCHAR(20),
			address TEXT,
			joined_at DATE NOT NULL,
			monthly_fees NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (monthly_fees >= 0),
			admission_status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			last_fee_paid_month DATE,
			current_class_session_id UUID REFERENCES class_sessions(id),
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS fee_payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			payment_type VARCHAR(20) NOT NULL,
			paid_months TEXT[] NOT NULL DEFAULT '{}',
			remarks TEXT,
			receipt_no TEXT UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS student_enrollments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			class_session_id UUID NOT NULL REFERENCES class_sessions(id),
			academic_year TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			result_status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, academic_year)
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_enrollment
			ON student_enrollments (student_id) WHERE is_active`,
		`CREATE INDEX IF NOT EXISTS idx_fee_payments_student ON fee_payments (student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_payments_date ON fee_payments (payment_date)`,
		`CREATE INDEX IF NOT EXISTS idx_fee_payments_months ON fee_payments USING GIN (paid_months)`,
		`CREATE INDEX IF NOT EXISTS idx_enrollments_student ON student_enrollments (student_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return fmt.Errorf("failed to run migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"maktab/app/models"
)

// Identifier formats. Roll numbers restart every calendar month, form
// numbers every year, GR (general register) numbers never.
//
//	roll: 001-072025   (serial, month+year suffix)
//	form: F-2025-001
//	gr:   GR-0001
//
// Each generator scans the existing identifiers for its scope inside
// the caller's transaction and returns max+1. Two concurrent creations
// can still pick the same serial; the unique index catches that and the
// caller retries the whole creation once.

// nextRollNumber returns the next roll number for the month containing t.
func nextRollNumber(tx *sql.Tx, t time.Time) (string, error) {
	suffix := t.Format("012006")
	existing, err := queryStrings(tx, `SELECT roll_number FROM students WHERE roll_number LIKE $1`, "%-"+suffix)
	if err != nil {
		return "", fmt.Errorf("failed to scan roll numbers: %v", err)
	}
	return rollNumberFrom(existing, suffix), nil
}

// nextFormNo returns the next admission form number for the given year.
func nextFormNo(tx *sql.Tx, year int) (string, error) {
	prefix := fmt.Sprintf("F-%d-", year)
	existing, err := queryStrings(tx, `SELECT form_no FROM students WHERE form_no LIKE $1`, prefix+"%")
	if err != nil {
		return "", fmt.Errorf("failed to scan form numbers: %v", err)
	}
	return formNoFrom(existing, year), nil
}

// nextGRNumber returns the next general register number (global scope).
func nextGRNumber(tx *sql.Tx) (string, error) {
	existing, err := queryStrings(tx, `SELECT gr_number FROM students WHERE gr_number LIKE 'GR-%'`)
	if err != nil {
		return "", fmt.Errorf("failed to scan GR numbers: %v", err)
	}
	return grNumberFrom(existing), nil
}

// rollNumberFrom computes the next roll number for a month suffix given
// the identifiers already issued under it.
func rollNumberFrom(existing []string, suffix string) string {
	max := maxSerial(existing, func(id string) string { return strings.TrimSuffix(id, "-"+suffix) })
	return fmt.Sprintf("%03d-%s", max+1, suffix)
}

func formNoFrom(existing []string, year int) string {
	prefix := fmt.Sprintf("F-%d-", year)
	max := maxSerial(existing, func(id string) string { return strings.TrimPrefix(id, prefix) })
	return fmt.Sprintf("%s%03d", prefix, max+1)
}

func grNumberFrom(existing []string) string {
	max := maxSerial(existing, func(id string) string { return strings.TrimPrefix(id, "GR-") })
	return fmt.Sprintf("GR-%04d", max+1)
}

// maxSerial returns the highest serial among the identifier segments,
// skipping malformed (hand-entered legacy) ones.
func maxSerial(ids []string, segment func(string) string) int {
	max := 0
	for _, id := range ids {
		if n, ok := parseSerial(segment(id)); ok && n > max {
			max = n
		}
	}
	return max
}

func queryStrings(tx *sql.Tx, query string, args ...interface{}) ([]string, error) {
	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// parseSerial extracts the numeric serial from an identifier segment.
// Malformed (hand-entered legacy) identifiers are skipped rather than
// failing the whole generation.
func parseSerial(segment string) (int, bool) {
	n, err := strconv.Atoi(segment)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// InitialEnrollment carries the optional class placement supplied at
// student creation time.
type InitialEnrollment struct {
	ClassLevelID string
	TimeSlotID   string
	AcademicYear string
}

// CreateStudent inserts a student with freshly generated identifiers,
// and optionally an initial active enrollment, in one transaction. If
// a concurrent creation grabbed the same serial, the whole unit is
// retried once before surfacing ErrDuplicateIdentifier.
func CreateStudent(db *sql.DB, student *models.Student, enroll *InitialEnrollment) error {
	err := createStudentOnce(db, student, enroll)
	if err != nil && isUniqueViolation(err) {
		err = createStudentOnce(db, student, enroll)
		if err != nil && isUniqueViolation(err) {
			return ErrDuplicateIdentifier
		}
	}
	return err
}

func createStudentOnce(db *sql.DB, student *models.Student, enroll *InitialEnrollment) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	if student.RollNumber, err = nextRollNumber(tx, now); err != nil {
		return err
	}
	if student.FormNo, err = nextFormNo(tx, now.Year()); err != nil {
		return err
	}
	if student.GRNumber, err = nextGRNumber(tx); err != nil {
		return err
	}

	query := `INSERT INTO students (roll_number, form_no, gr_number, first_name, last_name, gender,
			  guardian_name, phone, address, joined_at, monthly_fees, admission_status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query,
		student.RollNumber, student.FormNo, student.GRNumber,
		student.FirstName, student.LastName, string(student.Gender),
		student.GuardianName, student.Phone, student.Address,
		student.JoinedAt.Time, student.MonthlyFees, string(student.AdmissionStatus),
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return err
	}

	if enroll != nil {
		var sessionID string
		err = tx.QueryRow(
			`SELECT id FROM class_sessions WHERE class_level_id = $1 AND time_slot_id = $2 AND deleted_at IS NULL`,
			enroll.ClassLevelID, enroll.TimeSlotID,
		).Scan(&sessionID)
		if err == sql.ErrNoRows {
			return ErrTargetSessionNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.Exec(
			`INSERT INTO student_enrollments (student_id, class_session_id, academic_year, is_active, result_status)
			 VALUES ($1, $2, $3, true, 'PENDING')`,
			student.ID, sessionID, enroll.AcademicYear)
		if err != nil {
			return fmt.Errorf("failed to create initial enrollment: %v", err)
		}

		_, err = tx.Exec(
			`UPDATE students SET current_class_session_id = $1, updated_at = NOW() WHERE id = $2`,
			sessionID, student.ID)
		if err != nil {
			return err
		}
		student.CurrentClassSessionID = &sessionID
	}

	return tx.Commit()
}

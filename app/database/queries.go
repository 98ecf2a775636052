package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"maktab/app/models"

	"golang.org/x/crypto/bcrypt"
)

// StudentFilters represents filtering options for students
type StudentFilters struct {
	Search          string
	AdmissionStatus string
	ClassSessionID  string
	Limit           int
	Offset          int
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a user with a bcrypt-hashed password.
func CreateUser(db *sql.DB, email, password, firstName, lastName, role string) (*models.User, error) {
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{Email: email, FirstName: firstName, LastName: lastName, Role: role, IsActive: true}
	query := `INSERT INTO users (email, password, first_name, last_name, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at, updated_at`
	err = db.QueryRow(query, email, hashed, firstName, lastName, role).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func CreateSession(db *sql.DB, session *models.Session) error {
	query := `INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	_, err := db.Exec(query, session.ID, session.UserID, session.ExpiresAt, time.Now())
	return err
}

func DeleteSession(db *sql.DB, sessionID string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	_, err := db.Exec(query, sessionID)
	return err
}

const studentColumns = `id, roll_number, form_no, gr_number, first_name, last_name, gender,
			  guardian_name, phone, address, joined_at, monthly_fees, admission_status,
			  last_fee_paid_month, current_class_session_id, is_active, created_at, updated_at`

func scanStudent(row interface {
	Scan(dest ...interface{}) error
}) (*models.Student, error) {
	s := &models.Student{}
	var guardian, phone, address sql.NullString
	err := row.Scan(
		&s.ID, &s.RollNumber, &s.FormNo, &s.GRNumber, &s.FirstName, &s.LastName, &s.Gender,
		&guardian, &phone, &address, &s.JoinedAt, &s.MonthlyFees, &s.AdmissionStatus,
		&s.LastFeePaidMonth, &s.CurrentClassSessionID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.GuardianName = guardian.String
	s.Phone = phone.String
	s.Address = address.String
	return s, nil
}

// GetStudentByID fetches a single active student.
func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 AND deleted_at IS NULL`
	s, err := scanStudent(db.QueryRow(query, studentID))
	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStudents returns students matching the filters, newest first.
func GetStudents(db *sql.DB, filters StudentFilters) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE deleted_at IS NULL`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			`(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(roll_number) LIKE $%d OR LOWER(gr_number) LIKE $%d)`,
			argIndex, argIndex, argIndex, argIndex))
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
		argIndex++
	}
	if filters.AdmissionStatus != "" {
		conditions = append(conditions, fmt.Sprintf("admission_status = $%d", argIndex))
		args = append(args, filters.AdmissionStatus)
		argIndex++
	}
	if filters.ClassSessionID != "" {
		conditions = append(conditions, fmt.Sprintf("current_class_session_id = $%d", argIndex))
		args = append(args, filters.ClassSessionID)
		argIndex++
	}

	for _, cond := range conditions {
		query += " AND " + cond
	}
	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// UpdateAdmissionStatus moves a student through the admission pipeline.
func UpdateAdmissionStatus(db *sql.DB, studentID string, status models.AdmissionStatus) error {
	res, err := db.Exec(
		`UPDATE students SET admission_status = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		string(status), studentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStudentNotFound
	}
	return nil
}

package database

import (
	"database/sql"
	"fmt"

	"maktab/app/models"
)

// ResolveClassSession finds the session for a (class level, time slot)
// pair, the way callers address sessions on promotion.
func ResolveClassSession(db *sql.DB, classLevelID, timeSlotID string) (*models.ClassSession, error) {
	session := &models.ClassSession{}
	query := `SELECT id, class_level_id, time_slot_id, teacher_id, is_active, created_at, updated_at
			  FROM class_sessions
			  WHERE class_level_id = $1 AND time_slot_id = $2 AND deleted_at IS NULL`

	err := db.QueryRow(query, classLevelID, timeSlotID).Scan(
		&session.ID, &session.ClassLevelID, &session.TimeSlotID,
		&session.TeacherID, &session.IsActive, &session.CreatedAt, &session.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTargetSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// PromotionSkip explains why a student was left out of a promotion batch.
type PromotionSkip struct {
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

// promotionGuard answers the two per-student checks that decide whether
// a student joins a promotion batch.
type promotionGuard interface {
	StudentExists(studentID string) (bool, error)
	HasEnrollmentForYear(studentID, academicYear string) (bool, error)
}

// promotionSkipReason returns the reason to skip a student, or "" when
// the student should be promoted. The enrollment-for-year check is the
// idempotency guard: re-promoting lands here, never in a second insert.
func promotionSkipReason(g promotionGuard, studentID, academicYear string) (string, error) {
	exists, err := g.StudentExists(studentID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "student not found", nil
	}

	enrolled, err := g.HasEnrollmentForYear(studentID, academicYear)
	if err != nil {
		return "", err
	}
	if enrolled {
		return "already enrolled in target year", nil
	}
	return "", nil
}

type txPromotionGuard struct {
	tx *sql.Tx
}

func (g txPromotionGuard) StudentExists(studentID string) (bool, error) {
	var exists bool
	err := g.tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1 AND deleted_at IS NULL)`, studentID).Scan(&exists)
	return exists, err
}

func (g txPromotionGuard) HasEnrollmentForYear(studentID, academicYear string) (bool, error) {
	var exists bool
	err := g.tx.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM student_enrollments WHERE student_id = $1 AND academic_year = $2)`,
		studentID, academicYear,
	).Scan(&exists)
	return exists, err
}

// PromoteStudents moves each student's active enrollment to the target
// session under the target academic year. The whole batch runs in one
// transaction: a database failure rolls everything back, while
// per-student skips (already enrolled in the target year, unknown
// student) are collected and reported. Re-running the same promotion is
// harmless; every already-promoted student lands in skipped.
func PromoteStudents(db *sql.DB, studentIDs []string, targetSessionID, academicYear string) ([]string, []PromotionSkip, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	guard := txPromotionGuard{tx: tx}
	var promoted []string
	var skipped []PromotionSkip

	for _, studentID := range studentIDs {
		reason, err := promotionSkipReason(guard, studentID, academicYear)
		if err != nil {
			return nil, nil, err
		}
		if reason != "" {
			skipped = append(skipped, PromotionSkip{StudentID: studentID, Reason: reason})
			continue
		}

		// Close out the prior term. Promotion implies it was passed;
		// there is no automated fail path in this flow.
		_, err = tx.Exec(
			`UPDATE student_enrollments SET is_active = false, result_status = 'PASSED'
			 WHERE student_id = $1 AND is_active = true`,
			studentID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to close enrollment for %s: %v", studentID, err)
		}

		_, err = tx.Exec(
			`INSERT INTO student_enrollments (student_id, class_session_id, academic_year, is_active, result_status)
			 VALUES ($1, $2, $3, true, 'PENDING')`,
			studentID, targetSessionID, academicYear)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to enroll %s: %v", studentID, err)
		}

		_, err = tx.Exec(
			`UPDATE students SET current_class_session_id = $1, updated_at = NOW() WHERE id = $2`,
			targetSessionID, studentID)
		if err != nil {
			return nil, nil, err
		}

		promoted = append(promoted, studentID)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return promoted, skipped, nil
}

// GetEnrollmentHistory returns a student's enrollments, newest year
// first, with class level and time slot labels for display.
func GetEnrollmentHistory(db *sql.DB, studentID string) ([]*models.StudentEnrollment, error) {
	query := `SELECT e.id, e.student_id, e.class_session_id, e.academic_year, e.is_active, e.result_status, e.created_at,
			  cs.id, cs.class_level_id, cs.time_slot_id, cs.teacher_id, cs.is_active, cs.created_at, cs.updated_at
			  FROM student_enrollments e
			  JOIN class_sessions cs ON e.class_session_id = cs.id
			  WHERE e.student_id = $1
			  ORDER BY e.created_at DESC`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.StudentEnrollment
	for rows.Next() {
		e := &models.StudentEnrollment{Session: &models.ClassSession{}}
		var status string
		err := rows.Scan(
			&e.ID, &e.StudentID, &e.ClassSessionID, &e.AcademicYear, &e.IsActive, &status, &e.CreatedAt,
			&e.Session.ID, &e.Session.ClassLevelID, &e.Session.TimeSlotID,
			&e.Session.TeacherID, &e.Session.IsActive, &e.Session.CreatedAt, &e.Session.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		e.ResultStatus = models.ResultStatus(status)
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// GetActiveEnrollment returns the student's single active enrollment,
// or nil if the student has none.
func GetActiveEnrollment(db *sql.DB, studentID string) (*models.StudentEnrollment, error) {
	e := &models.StudentEnrollment{}
	var status string
	query := `SELECT id, student_id, class_session_id, academic_year, is_active, result_status, created_at
			  FROM student_enrollments
			  WHERE student_id = $1 AND is_active = true`

	err := db.QueryRow(query, studentID).Scan(
		&e.ID, &e.StudentID, &e.ClassSessionID, &e.AcademicYear, &e.IsActive, &status, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.ResultStatus = models.ResultStatus(status)
	return e, nil
}

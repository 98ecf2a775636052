package database

import (
	"database/sql"

	"maktab/app/models"
)

// CountActiveStudents counts active students with completed admission,
// the population the overview's collection percentage is measured over.
func CountActiveStudents(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM students
		 WHERE is_active = true AND admission_status = 'COMPLETED' AND deleted_at IS NULL`,
	).Scan(&count)
	return count, err
}

// CountUnpaidStudents counts active COMPLETED students who owe the given
// month: they joined before the month ended and no payment of theirs
// declares its token.
func CountUnpaidStudents(db *sql.DB, m models.Month) (int, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM students s
		 WHERE s.is_active = true
		   AND s.admission_status = 'COMPLETED'
		   AND s.deleted_at IS NULL
		   AND s.joined_at < $2
		   AND NOT EXISTS (
			   SELECT 1 FROM fee_payments p
			   WHERE p.student_id = s.id AND $1 = ANY(p.paid_months)
		   )`,
		m.String(), m.Next().Time(),
	).Scan(&count)
	return count, err
}

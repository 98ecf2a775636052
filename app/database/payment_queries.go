package database

import (
	"database/sql"
	"fmt"
	"time"

	"maktab/app/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// nextReceiptNo returns the next synthesized receipt number (global scope).
func nextReceiptNo(tx *sql.Tx) (string, error) {
	var max sql.NullInt64
	// receipt serials are always machine-generated, so the cast is safe
	err := tx.QueryRow(
		`SELECT MAX(CAST(SUBSTRING(receipt_no FROM 5) AS INTEGER)) FROM fee_payments WHERE receipt_no LIKE 'RCP-%'`,
	).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("failed to scan receipt numbers: %v", err)
	}
	return fmt.Sprintf("RCP-%05d", max.Int64+1), nil
}

// RecordMonthlyPayment inserts a MONTHLY fee payment covering the given
// months and raises the student's cached last-paid-month marker, all in
// one transaction. The cached marker is a fast-path hint for the
// payment screen; arrears are always recomputed from payment history.
// A concurrent receipt-serial collision retries the whole unit once,
// like student identifier generation.
func RecordMonthlyPayment(db *sql.DB, studentID string, amount decimal.Decimal, months []models.Month, remarks string) (*models.FeePayment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if len(months) == 0 {
		return nil, ErrNoMonths
	}

	payment, err := recordMonthlyPaymentOnce(db, studentID, amount, months, remarks)
	if err != nil && isUniqueViolation(err) {
		payment, err = recordMonthlyPaymentOnce(db, studentID, amount, months, remarks)
		if err != nil && isUniqueViolation(err) {
			return nil, ErrDuplicateIdentifier
		}
	}
	return payment, err
}

func recordMonthlyPaymentOnce(db *sql.DB, studentID string, amount decimal.Decimal, months []models.Month, remarks string) (*models.FeePayment, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var lastPaid *time.Time
	err = tx.QueryRow(
		`SELECT last_fee_paid_month FROM students WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`,
		studentID,
	).Scan(&lastPaid)
	if err == sql.ErrNoRows {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}

	payment := &models.FeePayment{
		StudentID:   studentID,
		Amount:      amount,
		PaymentType: models.PaymentMonthly,
		Remarks:     remarks,
	}
	for _, m := range months {
		payment.PaidMonths = append(payment.PaidMonths, m.String())
	}

	if payment.ReceiptNo, err = nextReceiptNo(tx); err != nil {
		return nil, err
	}

	query := `INSERT INTO fee_payments (student_id, amount, payment_type, paid_months, remarks, receipt_no)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, payment_date, created_at`
	err = tx.QueryRow(query,
		payment.StudentID, payment.Amount, string(payment.PaymentType),
		payment.PaidMonths, payment.Remarks, payment.ReceiptNo,
	).Scan(&payment.ID, &payment.PaymentDate, &payment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	// Raise the cached marker only if the new coverage extends past it.
	newest := models.MaxMonth(months).Time()
	if lastPaid == nil || lastPaid.Before(newest) {
		_, err = tx.Exec(
			`UPDATE students SET last_fee_paid_month = $1, updated_at = NOW() WHERE id = $2`,
			newest, studentID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return payment, nil
}

// RecordOtherPayment inserts an ADMISSION or DONATION entry. These carry
// no paid months and are attributed to reports by payment date alone.
func RecordOtherPayment(db *sql.DB, studentID string, amount decimal.Decimal, paymentType models.PaymentType, remarks string) (*models.FeePayment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	payment, err := recordOtherPaymentOnce(db, studentID, amount, paymentType, remarks)
	if err != nil && isUniqueViolation(err) {
		payment, err = recordOtherPaymentOnce(db, studentID, amount, paymentType, remarks)
		if err != nil && isUniqueViolation(err) {
			return nil, ErrDuplicateIdentifier
		}
	}
	return payment, err
}

func recordOtherPaymentOnce(db *sql.DB, studentID string, amount decimal.Decimal, paymentType models.PaymentType, remarks string) (*models.FeePayment, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1 AND deleted_at IS NULL)`, studentID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrStudentNotFound
	}

	payment := &models.FeePayment{
		StudentID:   studentID,
		Amount:      amount,
		PaymentType: paymentType,
		PaidMonths:  pq.StringArray{},
		Remarks:     remarks,
	}
	if payment.ReceiptNo, err = nextReceiptNo(tx); err != nil {
		return nil, err
	}

	query := `INSERT INTO fee_payments (student_id, amount, payment_type, paid_months, remarks, receipt_no)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, payment_date, created_at`
	err = tx.QueryRow(query,
		payment.StudentID, payment.Amount, string(payment.PaymentType),
		payment.PaidMonths, payment.Remarks, payment.ReceiptNo,
	).Scan(&payment.ID, &payment.PaymentDate, &payment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return payment, nil
}

func scanPayments(rows *sql.Rows) ([]*models.FeePayment, error) {
	var payments []*models.FeePayment
	for rows.Next() {
		p := &models.FeePayment{}
		var pType string
		var remarks sql.NullString
		err := rows.Scan(
			&p.ID, &p.StudentID, &p.Amount, &p.PaymentDate, &pType,
			&p.PaidMonths, &remarks, &p.ReceiptNo, &p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		p.PaymentType = models.PaymentType(pType)
		p.Remarks = remarks.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetPaymentsByStudent retrieves a student's payments, newest first.
func GetPaymentsByStudent(db *sql.DB, studentID string) ([]*models.FeePayment, error) {
	query := `SELECT id, student_id, amount, payment_date, payment_type, paid_months, remarks, receipt_no, created_at
			  FROM fee_payments
			  WHERE student_id = $1
			  ORDER BY payment_date DESC`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

// GetPaidMonthTokens returns the union of every month token appearing in
// any of the student's payments.
func GetPaidMonthTokens(db *sql.DB, studentID string) ([]string, error) {
	query := `SELECT DISTINCT unnest(paid_months) FROM fee_payments WHERE student_id = $1`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var tok string
		if err := rows.Scan(&tok); err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, rows.Err()
}

// GetPaymentsTouchingMonth returns every payment that can contribute to
// the given month's collected revenue: monthly payments declaring the
// month, plus non-monthly (and legacy monthly with no months) entries
// dated inside it.
func GetPaymentsTouchingMonth(db *sql.DB, m models.Month) ([]*models.FeePayment, error) {
	monthStart := m.Time()
	nextStart := m.Next().Time()

	query := `SELECT id, student_id, amount, payment_date, payment_type, paid_months, remarks, receipt_no, created_at
			  FROM fee_payments
			  WHERE $1 = ANY(paid_months)
			     OR (payment_type <> 'MONTHLY' AND payment_date >= $2 AND payment_date < $3)
			     OR (payment_type = 'MONTHLY' AND cardinality(paid_months) = 0 AND payment_date >= $2 AND payment_date < $3)
			  ORDER BY payment_date`

	rows, err := db.Query(query, m.String(), monthStart, nextStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// FeePayment represents a single immutable fee transaction. Monthly
// payments carry the list of "YYYY-MM" tokens they cover; admission and
// donation entries carry none and are attributed by payment date.
type FeePayment struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID   string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	PaymentDate time.Time       `json:"payment_date" gorm:"not null;index"`
	PaymentType PaymentType     `json:"payment_type" gorm:"not null;index;type:varchar(20)" validate:"required"`
	PaidMonths  pq.StringArray  `json:"paid_months" gorm:"type:text[]"`
	Remarks     string          `json:"remarks,omitempty"`
	ReceiptNo   string          `json:"receipt_no" gorm:"uniqueIndex;not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// Months parses the payment's paid-month tokens.
func (p *FeePayment) Months() ([]Month, error) {
	return ParseMonths(p.PaidMonths)
}

// CoversMonth reports whether the payment's declared months include m.
func (p *FeePayment) CoversMonth(m Month) bool {
	tok := m.String()
	for _, t := range p.PaidMonths {
		if t == tok {
			return true
		}
	}
	return false
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Student represents a student and the financial terms of their admission.
type Student struct {
	ID                    string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	RollNumber            string          `json:"roll_number" gorm:"uniqueIndex;not null"`
	FormNo                string          `json:"form_no" gorm:"uniqueIndex;not null"`
	GRNumber              string          `json:"gr_number" gorm:"uniqueIndex;not null"`
	FirstName             string          `json:"first_name" gorm:"not null" validate:"required"`
	LastName              string          `json:"last_name" gorm:"not null" validate:"required"`
	Gender                Gender          `json:"gender" gorm:"type:varchar(10)"`
	GuardianName          string          `json:"guardian_name,omitempty"`
	Phone                 string          `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Address               string          `json:"address,omitempty"`
	JoinedAt              CustomDate      `json:"joined_at" gorm:"not null;type:date;index" validate:"required"`
	MonthlyFees           decimal.Decimal `json:"monthly_fees" gorm:"not null;type:numeric(12,2)"`
	AdmissionStatus       AdmissionStatus `json:"admission_status" gorm:"not null;default:'PENDING';index;type:varchar(20)"`
	LastFeePaidMonth      *time.Time      `json:"last_fee_paid_month,omitempty" gorm:"type:date"`
	CurrentClassSessionID *string         `json:"current_class_session_id,omitempty" gorm:"index;type:uuid"`
	IsActive              bool            `json:"is_active" gorm:"default:true"`
	CreatedAt             time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt             *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	// Relationships
	CurrentSession *ClassSession        `json:"current_session,omitempty" gorm:"foreignKey:CurrentClassSessionID;references:ID"`
	Payments       []*FeePayment        `json:"payments,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Enrollments    []*StudentEnrollment `json:"enrollments,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// AccruesArrears reports whether the student is currently accumulating
// monthly fee obligations.
func (s *Student) AccruesArrears() bool {
	return s.AdmissionStatus == AdmissionCompleted
}

package models

import "time"

// StudentEnrollment is the versioned history of a student's class
// placement. An enrollment is never deleted: promotion deactivates the
// old record and inserts a fresh one for the next academic year, so the
// full history stays behind as the audit trail.
type StudentEnrollment struct {
	ID             string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID      string       `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ClassSessionID string       `json:"class_session_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYear   string       `json:"academic_year" gorm:"not null;index" validate:"required"`
	IsActive       bool         `json:"is_active" gorm:"default:true;index"`
	ResultStatus   ResultStatus `json:"result_status" gorm:"not null;default:'PENDING';type:varchar(20)"`
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`

	Student *Student      `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Session *ClassSession `json:"session,omitempty" gorm:"foreignKey:ClassSessionID;references:ID"`
}

package models

import "time"

// ClassLevel represents a grade/level taught at the maktab.
type ClassLevel struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Sessions []*ClassSession `json:"sessions,omitempty" gorm:"foreignKey:ClassLevelID;references:ID"`
}

// TimeSlot represents a teaching period students can be scheduled into.
type TimeSlot struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Label     string     `json:"label" gorm:"uniqueIndex;not null" validate:"required"`
	StartTime string     `json:"start_time" gorm:"type:varchar(5)"`
	EndTime   string     `json:"end_time" gorm:"type:varchar(5)"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// ClassSession is the (class level, time slot, teacher) combination a
// student can be enrolled into. A class level is taught by at most one
// teacher across all of its time slots.
type ClassSession struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	ClassLevelID string     `json:"class_level_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TimeSlotID   string     `json:"time_slot_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	TeacherID    *string    `json:"teacher_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	ClassLevel *ClassLevel `json:"class_level,omitempty" gorm:"foreignKey:ClassLevelID;references:ID"`
	TimeSlot   *TimeSlot   `json:"time_slot,omitempty" gorm:"foreignKey:TimeSlotID;references:ID"`
	Teacher    *User       `json:"teacher,omitempty" gorm:"foreignKey:TeacherID;references:ID"`
}

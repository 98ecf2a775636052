package settings

import (
	"database/sql"

	"maktab/app/database"
	"maktab/app/models"
)

func getClassLevels(db *sql.DB) ([]*models.ClassLevel, error) {
	rows, err := db.Query(
		`SELECT id, name, is_active, created_at, updated_at FROM class_levels WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []*models.ClassLevel
	for rows.Next() {
		l := &models.ClassLevel{}
		if err := rows.Scan(&l.ID, &l.Name, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

func createClassLevel(db *sql.DB, level *models.ClassLevel) error {
	return db.QueryRow(
		`INSERT INTO class_levels (name) VALUES ($1) RETURNING id, is_active, created_at, updated_at`,
		level.Name,
	).Scan(&level.ID, &level.IsActive, &level.CreatedAt, &level.UpdatedAt)
}

func getTimeSlots(db *sql.DB) ([]*models.TimeSlot, error) {
	rows, err := db.Query(
		`SELECT id, label, start_time, end_time, is_active, created_at, updated_at
		 FROM time_slots WHERE deleted_at IS NULL ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*models.TimeSlot
	for rows.Next() {
		s := &models.TimeSlot{}
		var start, end sql.NullString
		if err := rows.Scan(&s.ID, &s.Label, &start, &end, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.StartTime = start.String
		s.EndTime = end.String
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func createTimeSlot(db *sql.DB, slot *models.TimeSlot) error {
	return db.QueryRow(
		`INSERT INTO time_slots (label, start_time, end_time) VALUES ($1, $2, $3)
		 RETURNING id, is_active, created_at, updated_at`,
		slot.Label, slot.StartTime, slot.EndTime,
	).Scan(&slot.ID, &slot.IsActive, &slot.CreatedAt, &slot.UpdatedAt)
}

func getClassSessions(db *sql.DB) ([]*models.ClassSession, error) {
	rows, err := db.Query(
		`SELECT id, class_level_id, time_slot_id, teacher_id, is_active, created_at, updated_at
		 FROM class_sessions WHERE deleted_at IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.ClassSession
	for rows.Next() {
		s := &models.ClassSession{}
		if err := rows.Scan(&s.ID, &s.ClassLevelID, &s.TimeSlotID, &s.TeacherID,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// createClassSession inserts a session, keeping every session of a
// class level on the same teacher. Assigning a teacher to one slot
// claims the level's other slots for them too.
func createClassSession(db *sql.DB, session *models.ClassSession) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if session.TeacherID != nil {
		var other sql.NullString
		err = tx.QueryRow(
			`SELECT teacher_id FROM class_sessions
			 WHERE class_level_id = $1 AND teacher_id IS NOT NULL AND deleted_at IS NULL
			 LIMIT 1`,
			session.ClassLevelID,
		).Scan(&other)
		if err != nil && err != sql.ErrNoRows {
			return err
		}
		if other.Valid && other.String != *session.TeacherID {
			return database.ErrDuplicateTeacher
		}
	}

	err = tx.QueryRow(
		`INSERT INTO class_sessions (class_level_id, time_slot_id, teacher_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, is_active, created_at, updated_at`,
		session.ClassLevelID, session.TimeSlotID, session.TeacherID,
	).Scan(&session.ID, &session.IsActive, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

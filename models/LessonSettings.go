package models

import "time"

// LessonSettingsID is the fixed primary key of the single settings row.
// All accessors go through this identity so only one logical instance exists.
const LessonSettingsID uint = 1

// LessonSettings holds the global time window of the current lesson.
// All three fields null means the timer is disabled and the lesson is
// always active. Every state check is computed on read against the wall
// clock, there is no expiry job.
type LessonSettings struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	StartTime    *time.Time `gorm:"type:timestamp" json:"start_time"`
	EndTime      *time.Time `gorm:"type:timestamp" json:"end_time"`
	HardDeadline *time.Time `gorm:"type:timestamp" json:"hard_deadline"`
}

// IsLessonActiveAt reports whether the lesson is in session at the given time
func (s *LessonSettings) IsLessonActiveAt(now time.Time) bool {
	if s.EndTime == nil {
		return true // timer not set, lesson is always active
	}
	return now.Before(*s.EndTime)
}

// IsHardDeadlinePassedAt reports whether submissions are locked at the given
// time. Without a hard deadline the soft deadline doubles as the lock.
func (s *LessonSettings) IsHardDeadlinePassedAt(now time.Time) bool {
	if s.HardDeadline == nil {
		if s.EndTime == nil {
			return false
		}
		return now.After(*s.EndTime)
	}
	return now.After(*s.HardDeadline)
}

// IsLessonActive reports whether the lesson is currently in session
func (s *LessonSettings) IsLessonActive() bool {
	return s.IsLessonActiveAt(time.Now())
}

// IsHardDeadlinePassed reports whether submissions are currently locked
func (s *LessonSettings) IsHardDeadlinePassed() bool {
	return s.IsHardDeadlinePassedAt(time.Now())
}

// StatusAt returns the mentor-facing state label at the given time
func (s *LessonSettings) StatusAt(now time.Time) string {
	if s.IsLessonActiveAt(now) {
		return "active"
	}
	if !s.IsHardDeadlinePassedAt(now) {
		return "overtime"
	}
	return "locked"
}

// file: internals/features/payroll/attendances/model/mentor_attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Status Constants ===================== */

const (
	AttendanceStatusPresent    = "present"
	AttendanceStatusAbsent     = "absent"
	AttendanceStatusPermission = "permission"
	AttendanceStatusSick       = "sick"
)

// Hanya "present" yang dihitung sebagai sesi berbayar.
var AttendanceStatuses = []string{
	AttendanceStatusPresent,
	AttendanceStatusAbsent,
	AttendanceStatusPermission,
	AttendanceStatusSick,
}

func IsValidAttendanceStatus(s string) bool {
	for _, v := range AttendanceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

/* ===================== Model ===================== */

// MentorAttendanceModel: satu kejadian sesi (schedule × session_number × periode).
type MentorAttendanceModel struct {
	MentorAttendanceID uuid.UUID `json:"mentor_attendance_id" gorm:"type:uuid;primaryKey;column:mentor_attendance_id"`

	// Slot: maksimal satu event per (schedule, session_number, month, year)
	MentorAttendanceScheduleID    uuid.UUID `json:"mentor_attendance_schedule_id" gorm:"type:uuid;not null;uniqueIndex:uq_mentor_attendance_session,priority:1;column:mentor_attendance_schedule_id"`
	MentorAttendanceSessionNumber int       `json:"mentor_attendance_session_number" gorm:"not null;uniqueIndex:uq_mentor_attendance_session,priority:2;column:mentor_attendance_session_number;check:chk_mentor_attendance_session_pos,mentor_attendance_session_number >= 1"`
	MentorAttendanceMonth         int       `json:"mentor_attendance_month" gorm:"not null;uniqueIndex:uq_mentor_attendance_session,priority:3;index:idx_mentor_attendance_period,priority:2;column:mentor_attendance_month"`
	MentorAttendanceYear          int       `json:"mentor_attendance_year" gorm:"not null;uniqueIndex:uq_mentor_attendance_session,priority:4;index:idx_mentor_attendance_period,priority:3;column:mentor_attendance_year"`

	// Selalu id profil mentor (bukan user id)
	MentorAttendanceMentorID uuid.UUID `json:"mentor_attendance_mentor_id" gorm:"type:uuid;not null;index:idx_mentor_attendance_period,priority:1;column:mentor_attendance_mentor_id"`

	MentorAttendanceStatus string    `json:"mentor_attendance_status" gorm:"type:varchar(20);not null;column:mentor_attendance_status"`
	MentorAttendanceDate   time.Time `json:"mentor_attendance_date" gorm:"type:date;not null;column:mentor_attendance_date"`

	MentorAttendancePhotoURL *string `json:"mentor_attendance_photo_url,omitempty" gorm:"type:text;column:mentor_attendance_photo_url"`
	MentorAttendanceNote     *string `json:"mentor_attendance_note,omitempty" gorm:"type:text;column:mentor_attendance_note"`

	// Timestamps
	MentorAttendanceCreatedAt time.Time      `json:"mentor_attendance_created_at" gorm:"not null;autoCreateTime;column:mentor_attendance_created_at"`
	MentorAttendanceUpdatedAt time.Time      `json:"mentor_attendance_updated_at" gorm:"not null;autoUpdateTime;column:mentor_attendance_updated_at"`
	MentorAttendanceDeletedAt gorm.DeletedAt `json:"-" gorm:"index;column:mentor_attendance_deleted_at"`
}

func (MentorAttendanceModel) TableName() string { return "mentor_attendances" }

func (m *MentorAttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.MentorAttendanceID == uuid.Nil {
		m.MentorAttendanceID = uuid.New()
	}
	return nil
}

// file: internals/features/payroll/attendances/dto/mentor_attendance_dto.go
package dto

import (
	"strings"
	"time"

	"bimbel_backend/internals/features/payroll/attendances/model"
	"bimbel_backend/internals/features/payroll/attendances/service"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

/* ===================== Requests ===================== */

type MarkAttendanceRequest struct {
	ScheduleID    string  `json:"schedule_id" validate:"required,uuid"`
	SessionNumber int     `json:"session_number" validate:"required,min=1"`
	MentorID      string  `json:"mentor_id" validate:"required,uuid"`
	Month         int     `json:"month" validate:"required,min=1,max=12"`
	Year          int     `json:"year" validate:"required,min=2000,max=2100"`
	Status        string  `json:"status" validate:"required,oneof=present absent permission sick"`
	Date          string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	PhotoURL      *string `json:"photo_url" validate:"omitempty,url"`
	Note          *string `json:"note" validate:"omitempty,max=500"`
}

func (r MarkAttendanceRequest) ToInput() service.MarkInput {
	scheduleID, _ := uuid.Parse(r.ScheduleID)
	mentorID, _ := uuid.Parse(r.MentorID)
	in := service.MarkInput{
		ScheduleID:    scheduleID,
		SessionNumber: r.SessionNumber,
		MentorRef:     mentorID,
		Month:         r.Month,
		Year:          r.Year,
		Status:        r.Status,
		PhotoURL:      r.PhotoURL,
		Note:          r.Note,
	}
	if d, err := time.Parse(dateLayout, strings.TrimSpace(r.Date)); err == nil {
		in.Date = d
	}
	return in
}

type CorrectAttendanceRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=present absent permission sick"`
	Date   *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Note   *string `json:"note" validate:"omitempty,max=500"`
}

func (r CorrectAttendanceRequest) ToInput() service.CorrectInput {
	in := service.CorrectInput{Status: r.Status, Note: r.Note}
	if r.Date != nil {
		if d, err := time.Parse(dateLayout, strings.TrimSpace(*r.Date)); err == nil {
			in.Date = &d
		}
	}
	return in
}

/* ===================== Responses ===================== */

type AttendanceResponse struct {
	ID            uuid.UUID `json:"id"`
	ScheduleID    uuid.UUID `json:"schedule_id"`
	SessionNumber int       `json:"session_number"`
	MentorID      uuid.UUID `json:"mentor_id"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	Status        string    `json:"status"`
	Date          string    `json:"date"`
	PhotoURL      *string   `json:"photo_url,omitempty"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromModel(m *model.MentorAttendanceModel) AttendanceResponse {
	return AttendanceResponse{
		ID:            m.MentorAttendanceID,
		ScheduleID:    m.MentorAttendanceScheduleID,
		SessionNumber: m.MentorAttendanceSessionNumber,
		MentorID:      m.MentorAttendanceMentorID,
		Month:         m.MentorAttendanceMonth,
		Year:          m.MentorAttendanceYear,
		Status:        m.MentorAttendanceStatus,
		Date:          m.MentorAttendanceDate.Format(dateLayout),
		PhotoURL:      m.MentorAttendancePhotoURL,
		Note:          m.MentorAttendanceNote,
		CreatedAt:     m.MentorAttendanceCreatedAt,
		UpdatedAt:     m.MentorAttendanceUpdatedAt,
	}
}

func FromModels(rows []model.MentorAttendanceModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

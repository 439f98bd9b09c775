// file: internals/features/payroll/attendances/service/attendance_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"bimbel_backend/internals/features/payroll/attendances/model"
	"bimbel_backend/internals/features/payroll/errs"
	"bimbel_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MarkInput: satu event kehadiran. MentorRef boleh id profil atau user id.
type MarkInput struct {
	ScheduleID    uuid.UUID
	SessionNumber int
	MentorRef     uuid.UUID
	Month         int
	Year          int
	Status        string
	Date          time.Time
	PhotoURL      *string
	Note          *string
}

// CorrectInput: field nil = tidak diubah.
type CorrectInput struct {
	Status *string
	Date   *time.Time
	Note   *string
}

type AttendanceService struct {
	DB       *gorm.DB
	Resolver Resolver
}

func NewAttendanceService(db *gorm.DB, resolver Resolver) *AttendanceService {
	return &AttendanceService{DB: db, Resolver: resolver}
}

func validatePeriod(month, year int) map[string][]string {
	fields := map[string][]string{}
	if month < 1 || month > 12 {
		fields["month"] = []string{"harus 1..12"}
	}
	if year < 2000 || year > 2100 {
		fields["year"] = []string{"harus 2000..2100"}
	}
	return fields
}

// Mark: idempotent per slot (schedule, session_number, month, year).
// created=false → slot sudah terisi sebelumnya, record lama dikembalikan.
func (s *AttendanceService) Mark(ctx context.Context, in MarkInput) (*model.MentorAttendanceModel, bool, error) {
	fields := validatePeriod(in.Month, in.Year)
	if in.ScheduleID == uuid.Nil {
		fields["schedule_id"] = []string{"wajib diisi"}
	}
	if in.MentorRef == uuid.Nil {
		fields["mentor_id"] = []string{"wajib diisi"}
	}
	if in.SessionNumber < 1 {
		fields["session_number"] = []string{"minimal 1"}
	}
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if !model.IsValidAttendanceStatus(in.Status) {
		fields["status"] = []string{"harus salah satu dari: " + strings.Join(model.AttendanceStatuses, ", ")}
	}
	if len(fields) > 0 {
		return nil, false, errs.InvalidFields(fields)
	}

	// write selalu di-key id profil; mentor tak dikenal ditolak
	profileID, found, err := s.Resolver.Resolve(ctx, in.MentorRef)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, errs.NotFound("mentor %s tidak ditemukan", in.MentorRef)
	}

	date := in.Date
	if date.IsZero() {
		date = dbtime.Today()
	}

	row := model.MentorAttendanceModel{
		MentorAttendanceScheduleID:    in.ScheduleID,
		MentorAttendanceSessionNumber: in.SessionNumber,
		MentorAttendanceMonth:         in.Month,
		MentorAttendanceYear:          in.Year,
		MentorAttendanceMentorID:      profileID,
		MentorAttendanceStatus:        in.Status,
		MentorAttendanceDate:          date,
		MentorAttendancePhotoURL:      in.PhotoURL,
		MentorAttendanceNote:          in.Note,
	}

	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "mentor_attendance_schedule_id"},
			{Name: "mentor_attendance_session_number"},
			{Name: "mentor_attendance_month"},
			{Name: "mentor_attendance_year"},
		},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return nil, false, errs.Upstream(res.Error, "mark attendance")
	}
	if res.RowsAffected == 1 {
		return &row, true, nil
	}

	var existing model.MentorAttendanceModel
	err = s.DB.WithContext(ctx).Unscoped().
		Where("mentor_attendance_schedule_id = ? AND mentor_attendance_session_number = ? AND mentor_attendance_month = ? AND mentor_attendance_year = ?",
			in.ScheduleID, in.SessionNumber, in.Month, in.Year).
		First(&existing).Error
	if err != nil {
		return nil, false, errs.Upstream(err, "re-read attendance slot")
	}
	if existing.MentorAttendanceDeletedAt.Valid {
		return nil, false, errs.Conflict("sesi %d jadwal %s pernah dihapus, pulihkan dulu", in.SessionNumber, in.ScheduleID)
	}
	if existing.MentorAttendanceMentorID != profileID {
		return nil, false, errs.Conflict("sesi %d jadwal %s sudah diisi mentor lain", in.SessionNumber, in.ScheduleID)
	}
	return &existing, false, nil
}

// Correct: ubah status/tanggal/catatan satu event (mis. absent → present setelah payroll didraft).
func (s *AttendanceService) Correct(ctx context.Context, id uuid.UUID, in CorrectInput) (*model.MentorAttendanceModel, error) {
	updates := map[string]interface{}{}
	if in.Status != nil {
		st := strings.ToLower(strings.TrimSpace(*in.Status))
		if !model.IsValidAttendanceStatus(st) {
			return nil, errs.Invalid("status", "harus salah satu dari: "+strings.Join(model.AttendanceStatuses, ", "))
		}
		updates["mentor_attendance_status"] = st
	}
	if in.Date != nil {
		updates["mentor_attendance_date"] = *in.Date
	}
	if in.Note != nil {
		updates["mentor_attendance_note"] = strings.TrimSpace(*in.Note)
	}
	if len(updates) == 0 {
		return nil, errs.Invalid("_", "tidak ada field yang diubah")
	}

	res := s.DB.WithContext(ctx).
		Model(&model.MentorAttendanceModel{}).
		Where("mentor_attendance_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, errs.Upstream(res.Error, "correct attendance")
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound("attendance %s tidak ditemukan", id)
	}
	return s.Get(ctx, id)
}

func (s *AttendanceService) Get(ctx context.Context, id uuid.UUID) (*model.MentorAttendanceModel, error) {
	var row model.MentorAttendanceModel
	if err := s.DB.WithContext(ctx).Where("mentor_attendance_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("attendance %s tidak ditemukan", id)
		}
		return nil, errs.Upstream(err, "get attendance")
	}
	return &row, nil
}

// ListForPeriod: event satu mentor dalam satu periode (semua status), urut tanggal & sesi.
func (s *AttendanceService) ListForPeriod(ctx context.Context, mentorRef uuid.UUID, month, year, offset, limit int) ([]model.MentorAttendanceModel, int64, error) {
	if fields := validatePeriod(month, year); len(fields) > 0 {
		return nil, 0, errs.InvalidFields(fields)
	}
	profileID := mentorRef
	if id, found, err := s.Resolver.Resolve(ctx, mentorRef); err != nil {
		return nil, 0, err
	} else if found {
		profileID = id
	}

	q := s.DB.WithContext(ctx).Model(&model.MentorAttendanceModel{}).
		Where("mentor_attendance_mentor_id = ? AND mentor_attendance_month = ? AND mentor_attendance_year = ?", profileID, month, year)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errs.Upstream(err, "count attendances")
	}

	var rows []model.MentorAttendanceModel
	q = q.Order("mentor_attendance_date ASC, mentor_attendance_session_number ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, errs.Upstream(err, "list attendances")
	}
	return rows, total, nil
}

// file: internals/features/payroll/attendances/service/aggregator.go
package service

import (
	"context"
	"log"

	"bimbel_backend/internals/features/payroll/attendances/model"
	"bimbel_backend/internals/features/payroll/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolver: id profil dari referensi mentor (profil / user id).
type Resolver interface {
	Resolve(ctx context.Context, ref uuid.UUID) (profileID uuid.UUID, found bool, err error)
}

// Aggregator menghitung sesi "present" mentor per periode. Read-only.
type Aggregator struct {
	DB       *gorm.DB
	Resolver Resolver
}

func NewAggregator(db *gorm.DB, resolver Resolver) *Aggregator {
	return &Aggregator{DB: db, Resolver: resolver}
}

// CountPresentSessions: jumlah event present untuk (mentor, month, year).
// Kalau mapping mentor tidak ada, ref dipakai langsung sebagai id profil (data lama).
func (a *Aggregator) CountPresentSessions(ctx context.Context, mentorRef uuid.UUID, month, year int) (int, error) {
	profileID, err := a.resolveOrFallback(ctx, mentorRef)
	if err != nil {
		return 0, err
	}

	var n int64
	err = a.DB.WithContext(ctx).
		Model(&model.MentorAttendanceModel{}).
		Where("mentor_attendance_mentor_id = ? AND mentor_attendance_month = ? AND mentor_attendance_year = ? AND mentor_attendance_status = ?",
			profileID, month, year, model.AttendanceStatusPresent).
		Count(&n).Error
	if err != nil {
		return 0, errs.Upstream(err, "count present sessions")
	}
	return int(n), nil
}

func (a *Aggregator) resolveOrFallback(ctx context.Context, ref uuid.UUID) (uuid.UUID, error) {
	if a.Resolver == nil {
		return ref, nil
	}
	id, found, err := a.Resolver.Resolve(ctx, ref)
	if err != nil {
		return uuid.Nil, err
	}
	if !found {
		log.Printf("[WARN] mentor %s tidak punya profil, dihitung sebagai id profil langsung", ref)
		return ref, nil
	}
	return id, nil
}

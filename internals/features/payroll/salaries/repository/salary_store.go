// file: internals/features/payroll/salaries/repository/salary_store.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bimbel_backend/internals/features/payroll/errs"
	"bimbel_backend/internals/features/payroll/salaries/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	colID            = "mentor_salary_id"
	colMentorID      = "mentor_salary_mentor_id"
	colMonth         = "mentor_salary_month"
	colYear          = "mentor_salary_year"
	colRate          = "mentor_salary_rate_per_session"
	colTotalSessions = "mentor_salary_total_sessions"
	colBonus         = "mentor_salary_bonus"
	colDeduction     = "mentor_salary_deduction"
	colTotalAmount   = "mentor_salary_total_amount"
	colStatus        = "mentor_salary_status"
	colProofImage    = "mentor_salary_proof_image"
	colPaidAt        = "mentor_salary_paid_at"
	colUpdatedAt     = "mentor_salary_updated_at"
)

// SalaryStore: satu-satunya tempat yang memutasi tabel mentor_salaries.
// Setiap mutasi = satu statement SQL kondisional.
type SalaryStore struct {
	DB *gorm.DB
}

func NewSalaryStore(db *gorm.DB) *SalaryStore {
	return &SalaryStore{DB: db}
}

// ListFilter untuk query list (nil = tanpa filter).
type ListFilter struct {
	Month    *int
	Year     *int
	MentorID *uuid.UUID
	Status   *model.SalaryStatus
	OrderBy  string
	Offset   int
	Limit    int
}

/* ===================== Reads ===================== */

func (s *SalaryStore) GetByID(ctx context.Context, id uuid.UUID) (*model.MentorSalaryModel, error) {
	var rec model.MentorSalaryModel
	err := s.DB.WithContext(ctx).Where(colID+" = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("gaji %s tidak ditemukan", id)
		}
		return nil, errs.Upstream(err, "get salary")
	}
	return &rec, nil
}

func (s *SalaryStore) GetByPeriod(ctx context.Context, mentorID uuid.UUID, month, year int) (*model.MentorSalaryModel, error) {
	var rec model.MentorSalaryModel
	err := s.DB.WithContext(ctx).
		Where(colMentorID+" = ? AND "+colMonth+" = ? AND "+colYear+" = ?", mentorID, month, year).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("gaji mentor %s periode %02d/%d tidak ditemukan", mentorID, month, year)
		}
		return nil, errs.Upstream(err, "get salary by period")
	}
	return &rec, nil
}

func (s *SalaryStore) List(ctx context.Context, f ListFilter) ([]model.MentorSalaryModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.MentorSalaryModel{})
	if f.Month != nil {
		q = q.Where(colMonth+" = ?", *f.Month)
	}
	if f.Year != nil {
		q = q.Where(colYear+" = ?", *f.Year)
	}
	if f.MentorID != nil {
		q = q.Where(colMentorID+" = ?", *f.MentorID)
	}
	if f.Status != nil {
		q = q.Where(colStatus+" = ?", string(*f.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errs.Upstream(err, "count salaries")
	}

	order := f.OrderBy
	if order == "" {
		order = colYear + " DESC, " + colMonth + " DESC, " + colMentorID + " ASC"
	}
	q = q.Order(order)
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var rows []model.MentorSalaryModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, errs.Upstream(err, "list salaries")
	}
	return rows, total, nil
}

/* ===================== Writes ===================== */

// UpsertDraft: INSERT … ON CONFLICT (mentor, month, year) DO UPDATE … WHERE status = 'DRAFT'.
// Record PAID tidak tersentuh (0 rows) → state conflict.
func (s *SalaryStore) UpsertDraft(ctx context.Context, in model.MentorSalaryModel) (*model.MentorSalaryModel, error) {
	row := in
	row.MentorSalaryID = uuid.Nil
	row.MentorSalaryStatus = model.SalaryStatusDraft
	row.MentorSalaryProofImage = nil
	row.MentorSalaryPaidAt = nil
	if err := model.CheckDraftBounds(model.DraftInputs{
		RatePerSession: row.MentorSalaryRatePerSession,
		TotalSessions:  row.MentorSalaryTotalSessions,
		Bonus:          row.MentorSalaryBonus,
		Deduction:      row.MentorSalaryDeduction,
	}); err != nil {
		return nil, err
	}
	row.MentorSalaryTotalAmount = model.ComputeTotal(
		row.MentorSalaryRatePerSession, row.MentorSalaryTotalSessions,
		row.MentorSalaryBonus, row.MentorSalaryDeduction,
	)

	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: colMentorID}, {Name: colMonth}, {Name: colYear}},
		DoUpdates: clause.AssignmentColumns([]string{
			colRate, colTotalSessions, colBonus, colDeduction, colTotalAmount, colUpdatedAt,
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: model.MentorSalaryModel{}.TableName(), Name: colStatus},
				Value:  string(model.SalaryStatusDraft),
			},
		}},
	}).Create(&row)
	if res.Error != nil {
		return nil, errs.Upstream(res.Error, "upsert salary draft")
	}

	// id di struct bisa jadi id baru yang tidak dipakai (kasus conflict) → baca ulang by period
	cur, err := s.GetByPeriod(ctx, in.MentorSalaryMentorID, in.MentorSalaryMonth, in.MentorSalaryYear)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Upstream(err, "re-read salary draft")
		}
		return nil, err
	}
	if res.RowsAffected == 0 {
		if cur.MentorSalaryStatus.IsPaid() {
			return nil, errs.Conflict("gaji mentor %s periode %02d/%d sudah PAID, tidak bisa diedit",
				in.MentorSalaryMentorID, in.MentorSalaryMonth, in.MentorSalaryYear)
		}
		return nil, errs.Upstream(errors.New("upsert affected no rows"), "upsert salary draft")
	}
	return cur, nil
}

// MarkPaid: UPDATE … SET status='PAID' … WHERE id = ? AND status = 'DRAFT'.
// Dua request bersamaan: hanya satu yang kena 1 row.
func (s *SalaryStore) MarkPaid(ctx context.Context, id uuid.UUID, proof string, paidAt time.Time) (*model.MentorSalaryModel, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.MentorSalaryModel{}).
		Where(colID+" = ? AND "+colStatus+" = ?", id, string(model.SalaryStatusDraft)).
		Updates(map[string]interface{}{
			colStatus:     string(model.SalaryStatusPaid),
			colProofImage: proof,
			colPaidAt:     paidAt,
		})
	if res.Error != nil {
		return nil, errs.Upstream(res.Error, "mark salary paid")
	}

	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		// record ada tapi bukan DRAFT lagi
		return nil, errs.Conflict("gaji %s sudah dibayar", id)
	}
	return cur, nil
}

// RefreshSessions: total dihitung ulang dari kolom baris saat write (commute dengan edit draft).
// Status, bukti & paid_at tidak disentuh.
func (s *SalaryStore) RefreshSessions(ctx context.Context, id uuid.UUID, sessions int) (*model.MentorSalaryModel, error) {
	if sessions < 0 || sessions > model.MaxTotalSessions {
		return nil, errs.Invalid("total_sessions", fmt.Sprintf("harus 0..%d", model.MaxTotalSessions))
	}
	res := s.DB.WithContext(ctx).
		Model(&model.MentorSalaryModel{}).
		Where(colID+" = ?", id).
		Updates(map[string]interface{}{
			colTotalSessions: sessions,
			colTotalAmount: gorm.Expr(
				colRate+" * ? + "+colBonus+" - "+colDeduction, sessions,
			),
		})
	if res.Error != nil {
		return nil, errs.Upstream(res.Error, "refresh salary sessions")
	}
	if res.RowsAffected == 0 {
		return nil, errs.NotFound("gaji %s tidak ditemukan", id)
	}
	return s.GetByID(ctx, id)
}

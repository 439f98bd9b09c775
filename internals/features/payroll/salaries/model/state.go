package model

import (
	"fmt"
	"strings"
	"time"

	"bimbel_backend/internals/features/payroll/errs"
)

// Batas input draft. Hasil rate × sessions + bonus tetap jauh di bawah batas bigint.
const (
	MaxRatePerSession int64 = 100_000_000
	MaxTotalSessions        = 10_000
	MaxAdjustment     int64 = 1_000_000_000_000
)

// CheckDraftBounds: nilai di luar batas ditolak sebagai error validasi.
func CheckDraftBounds(in DraftInputs) error {
	fields := map[string][]string{}
	if in.RatePerSession < 0 || in.RatePerSession > MaxRatePerSession {
		fields["rate_per_session"] = []string{fmt.Sprintf("harus 0..%d", MaxRatePerSession)}
	}
	if in.TotalSessions < 0 || in.TotalSessions > MaxTotalSessions {
		fields["total_sessions"] = []string{fmt.Sprintf("harus 0..%d", MaxTotalSessions)}
	}
	if in.Bonus < 0 || in.Bonus > MaxAdjustment {
		fields["bonus"] = []string{fmt.Sprintf("harus 0..%d", MaxAdjustment)}
	}
	if in.Deduction < 0 || in.Deduction > MaxAdjustment {
		fields["deduction"] = []string{fmt.Sprintf("harus 0..%d", MaxAdjustment)}
	}
	if len(fields) > 0 {
		return errs.InvalidFields(fields)
	}
	return nil
}

// ComputeTotal = rate × sessions + bonus − deduction (boleh negatif, tidak di-clamp).
func ComputeTotal(rate int64, sessions int, bonus, deduction int64) int64 {
	return rate*int64(sessions) + bonus - deduction
}

// DraftInputs: nilai yang boleh diubah lewat draft.
type DraftInputs struct {
	RatePerSession int64
	TotalSessions  int
	Bonus          int64
	Deduction      int64
}

// ApplyDraft mengisi input draft + total. Record PAID tidak boleh diedit.
func ApplyDraft(rec MentorSalaryModel, in DraftInputs) (MentorSalaryModel, error) {
	if rec.MentorSalaryStatus.IsPaid() {
		return rec, errs.Conflict("gaji %s sudah PAID, tidak bisa diedit", rec.MentorSalaryID)
	}
	if err := CheckDraftBounds(in); err != nil {
		return rec, err
	}
	rec.MentorSalaryStatus = SalaryStatusDraft
	rec.MentorSalaryRatePerSession = in.RatePerSession
	rec.MentorSalaryTotalSessions = in.TotalSessions
	rec.MentorSalaryBonus = in.Bonus
	rec.MentorSalaryDeduction = in.Deduction
	rec.MentorSalaryTotalAmount = ComputeTotal(in.RatePerSession, in.TotalSessions, in.Bonus, in.Deduction)
	return rec, nil
}

// TryPay: DRAFT → PAID. Satu arah; PAID tidak pernah kembali ke DRAFT.
func TryPay(rec MentorSalaryModel, proof string, at time.Time) (MentorSalaryModel, error) {
	proof = strings.TrimSpace(proof)
	if proof == "" {
		return rec, errs.Invalid("proof_image", "wajib diisi")
	}
	if rec.MentorSalaryStatus.IsPaid() {
		return rec, errs.Conflict("gaji %s sudah dibayar", rec.MentorSalaryID)
	}
	rec.MentorSalaryStatus = SalaryStatusPaid
	rec.MentorSalaryProofImage = &proof
	paidAt := at
	rec.MentorSalaryPaidAt = &paidAt
	return rec, nil
}

// TouchSessions: hanya sessions & total yang berubah, status/bukti tetap.
func TouchSessions(rec MentorSalaryModel, sessions int) MentorSalaryModel {
	rec.MentorSalaryTotalSessions = sessions
	rec.MentorSalaryTotalAmount = ComputeTotal(rec.MentorSalaryRatePerSession, sessions, rec.MentorSalaryBonus, rec.MentorSalaryDeduction)
	return rec
}

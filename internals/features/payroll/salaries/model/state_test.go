package model

import (
	"testing"
	"time"

	"bimbel_backend/internals/features/payroll/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name      string
		rate      int64
		sessions  int
		bonus     int64
		deduction int64
		want      int64
	}{
		{name: "tanpa bonus", rate: 50000, sessions: 10, want: 500000},
		{name: "dengan bonus", rate: 50000, sessions: 8, bonus: 100000, want: 500000},
		{name: "potongan", rate: 75000, sessions: 4, bonus: 10000, deduction: 60000, want: 250000},
		{name: "nol sesi", rate: 50000, sessions: 0, bonus: 20000, want: 20000},
		{name: "negatif tidak di-clamp", rate: 10000, sessions: 1, deduction: 50000, want: -40000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTotal(tt.rate, tt.sessions, tt.bonus, tt.deduction))
		})
	}
}

func TestApplyDraft(t *testing.T) {
	rec := MentorSalaryModel{MentorSalaryID: uuid.New(), MentorSalaryMonth: 6, MentorSalaryYear: 2025}

	out, err := ApplyDraft(rec, DraftInputs{RatePerSession: 50000, TotalSessions: 8, Bonus: 100000})
	require.NoError(t, err)
	assert.Equal(t, SalaryStatusDraft, out.MentorSalaryStatus)
	assert.Equal(t, int64(500000), out.MentorSalaryTotalAmount)
	assert.Equal(t, 8, out.MentorSalaryTotalSessions)

	paid := out
	paid.MentorSalaryStatus = SalaryStatusPaid
	_, err = ApplyDraft(paid, DraftInputs{RatePerSession: 1, TotalSessions: 1})
	assert.True(t, errs.IsConflict(err))
}

func TestTryPay(t *testing.T) {
	at := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	rec := MentorSalaryModel{MentorSalaryID: uuid.New(), MentorSalaryStatus: SalaryStatusDraft}

	_, err := TryPay(rec, "   ", at)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, errs.Fields(err), "proof_image")

	out, err := TryPay(rec, " proof://abc ", at)
	require.NoError(t, err)
	assert.Equal(t, SalaryStatusPaid, out.MentorSalaryStatus)
	require.NotNil(t, out.MentorSalaryProofImage)
	assert.Equal(t, "proof://abc", *out.MentorSalaryProofImage)
	require.NotNil(t, out.MentorSalaryPaidAt)
	assert.True(t, at.Equal(*out.MentorSalaryPaidAt))

	// input asli tidak berubah
	assert.Equal(t, SalaryStatusDraft, rec.MentorSalaryStatus)

	_, err = TryPay(out, "proof://xyz", at)
	assert.True(t, errs.IsConflict(err))
}

func TestTouchSessionsKeepsPaidState(t *testing.T) {
	proof := "proof://abc"
	paidAt := time.Now()
	rec := MentorSalaryModel{
		MentorSalaryRatePerSession: 50000,
		MentorSalaryTotalSessions:  8,
		MentorSalaryBonus:          100000,
		MentorSalaryTotalAmount:    500000,
		MentorSalaryStatus:         SalaryStatusPaid,
		MentorSalaryProofImage:     &proof,
		MentorSalaryPaidAt:         &paidAt,
	}

	out := TouchSessions(rec, 10)
	assert.Equal(t, 10, out.MentorSalaryTotalSessions)
	assert.Equal(t, int64(600000), out.MentorSalaryTotalAmount)
	assert.Equal(t, SalaryStatusPaid, out.MentorSalaryStatus)
	assert.Equal(t, &proof, out.MentorSalaryProofImage)
	assert.Equal(t, &paidAt, out.MentorSalaryPaidAt)
}

func TestCheckDraftBounds(t *testing.T) {
	tests := []struct {
		name  string
		in    DraftInputs
		field string
	}{
		{name: "batas atas masih valid", in: DraftInputs{RatePerSession: MaxRatePerSession, TotalSessions: MaxTotalSessions, Bonus: MaxAdjustment, Deduction: MaxAdjustment}},
		{name: "tarif raksasa", in: DraftInputs{RatePerSession: 1 << 62, TotalSessions: 2}, field: "rate_per_session"},
		{name: "sesi kebanyakan", in: DraftInputs{RatePerSession: 50000, TotalSessions: MaxTotalSessions + 1}, field: "total_sessions"},
		{name: "bonus raksasa", in: DraftInputs{RatePerSession: 50000, Bonus: MaxAdjustment + 1}, field: "bonus"},
		{name: "potongan negatif", in: DraftInputs{RatePerSession: 50000, Deduction: -1}, field: "deduction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDraftBounds(tt.in)
			if tt.field == "" {
				require.NoError(t, err)
				total := ComputeTotal(tt.in.RatePerSession, tt.in.TotalSessions, tt.in.Bonus, tt.in.Deduction)
				assert.Equal(t, MaxRatePerSession*MaxTotalSessions, total)
				return
			}
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))
			assert.Contains(t, errs.Fields(err), tt.field)
		})
	}
}

func TestApplyDraftRejectsOutOfBounds(t *testing.T) {
	rec := MentorSalaryModel{MentorSalaryID: uuid.New(), MentorSalaryMonth: 6, MentorSalaryYear: 2025}

	out, err := ApplyDraft(rec, DraftInputs{RatePerSession: 1 << 62, TotalSessions: 2})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Zero(t, out.MentorSalaryTotalAmount)
}

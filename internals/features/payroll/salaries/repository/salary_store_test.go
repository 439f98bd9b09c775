package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"bimbel_backend/internals/features/payroll/errs"
	"bimbel_backend/internals/features/payroll/salaries/model"
	testutil "bimbel_backend/internals/tests"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftRow(mentorID uuid.UUID, rate int64, sessions int, bonus, deduction int64) model.MentorSalaryModel {
	return model.MentorSalaryModel{
		MentorSalaryMentorID:       mentorID,
		MentorSalaryMonth:          6,
		MentorSalaryYear:           2025,
		MentorSalaryRatePerSession: rate,
		MentorSalaryTotalSessions:  sessions,
		MentorSalaryBonus:          bonus,
		MentorSalaryDeduction:      deduction,
	}
}

func TestSalaryStore_UpsertDraftIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewSalaryStore(testutil.PrepareDB(t))
	mentorID := uuid.New()

	first, err := store.UpsertDraft(ctx, draftRow(mentorID, 50000, 10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, model.SalaryStatusDraft, first.MentorSalaryStatus)
	assert.Equal(t, int64(500000), first.MentorSalaryTotalAmount)

	second, err := store.UpsertDraft(ctx, draftRow(mentorID, 50000, 10, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, first.MentorSalaryID, second.MentorSalaryID)
	assert.Equal(t, int64(500000), second.MentorSalaryTotalAmount)

	_, total, err := store.List(ctx, ListFilter{MentorID: &mentorID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSalaryStore_UpsertDraftOverwritesDraft(t *testing.T) {
	ctx := context.Background()
	store := NewSalaryStore(testutil.PrepareDB(t))
	mentorID := uuid.New()

	first, err := store.UpsertDraft(ctx, draftRow(mentorID, 50000, 10, 0, 0))
	require.NoError(t, err)

	out, err := store.UpsertDraft(ctx, draftRow(mentorID, 60000, 8, 20000, 10000))
	require.NoError(t, err)
	assert.Equal(t, first.MentorSalaryID, out.MentorSalaryID)
	assert.Equal(t, int64(60000), out.MentorSalaryRatePerSession)
	assert.Equal(t, 8, out.MentorSalaryTotalSessions)
	assert.Equal(t, int64(60000*8+20000-10000), out.MentorSalaryTotalAmount)
}

func TestSalaryStore_UpsertDraftRejectsPaid(t *testing.T) {
	ctx := context.Background()
	store := NewSalaryStore(testutil.PrepareDB(t))
	mentorID := uuid.New()

	rec, err := store.UpsertDraft(ctx, draftRow(mentorID, 50000, 8, 100000, 0))
	require.NoError(t, err)
	_, err = store.MarkPaid(ctx, rec.MentorSalaryID, "proof://abc", time.Now())
	require.NoError(t, err)

	_, err = store.UpsertDraft(ctx, draftRow(mentorID, 99999, 1, 0, 0))
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	cur, err := store.GetByID(ctx, rec.MentorSalaryID)
	require.NoError(t, err)
	assert.Equal(t, model.SalaryStatusPaid, cur.MentorSalaryStatus)
	assert.Equal(t, int64(50000), cur.MentorSalaryRatePerSession)
	assert.Equal(t, int64(500000), cur.MentorSalaryTotalAmount)
}

func TestSalaryStore_MarkPaid(t *testing.T) {
	ctx := context.Background()
	store := NewSalaryStore(testutil.PrepareDB(t))

	rec, err := store.UpsertDraft(ctx, draftRow(uuid.New(), 50000, 8, 100000, 0))
	require.NoError(t, err)

	paid, err := store.MarkPaid(ctx, rec.MentorSalaryID, "proof://abc", time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.SalaryStatusPaid, paid.MentorSalaryStatus)
	require.NotNil(t, paid.MentorSalaryProofImage)
	assert.Equal(t, "proof://abc", *paid.MentorSalaryProofImage)
	assert.NotNil(t, paid.MentorSalaryPaidAt)
	assert.Equal(t, int64(500000), paid.MentorSalaryTotalAmount)

	_, err = store.MarkPaid(ctx, rec.MentorSalaryID, "proof://again", time.Now())
	assert.True(t, errs.IsConflict(err))

	_, err = store.MarkPaid(ctx, uuid.New(), "proof://abc", time.Now())
	assert.True(t, errs.IsNotFound(err))
}

func TestSalaryStore_ConcurrentMarkPaidOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	store := NewSalaryStore(testutil.PrepareDB(t))

	rec, err := store.UpsertDraft(ctx, draftRow(uuid.New(), 50000, 8, 0, 0))
	require.NoError(t, err)

	const workers = 5
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.MarkPaid(ctx, rec.MentorSalaryID, "proof://race", time.Now())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errs.IsConflict(err):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
}

func TestSalaryStore_RefreshSessionsKeepsStatus(t *testing.T) {
	ctx := context.Background()
	store := NewSalaryStore(testutil.PrepareDB(t))

	rec, err := store.UpsertDraft(ctx, draftRow(uuid.New(), 50000, 8, 100000, 20000))
	require.NoError(t, err)
	paid, err := store.MarkPaid(ctx, rec.MentorSalaryID, "proof://abc", time.Now())
	require.NoError(t, err)

	out, err := store.RefreshSessions(ctx, rec.MentorSalaryID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, out.MentorSalaryTotalSessions)
	assert.Equal(t, int64(50000*10+100000-20000), out.MentorSalaryTotalAmount)
	assert.Equal(t, model.SalaryStatusPaid, out.MentorSalaryStatus)
	assert.Equal(t, paid.MentorSalaryProofImage, out.MentorSalaryProofImage)
	require.NotNil(t, out.MentorSalaryPaidAt)

	_, err = store.RefreshSessions(ctx, uuid.New(), 3)
	assert.True(t, errs.IsNotFound(err))
}

func TestSalaryStore_UpsertDraftRejectsOverflow(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareDB(t)
	store := NewSalaryStore(db)
	mentorID := uuid.New()

	_, err := store.UpsertDraft(ctx, draftRow(mentorID, 1<<62, 2, 0, 0))
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, errs.Fields(err), "rate_per_session")

	var count int64
	require.NoError(t, db.Model(&model.MentorSalaryModel{}).Count(&count).Error)
	assert.Zero(t, count)

	rec, err := store.UpsertDraft(ctx, draftRow(mentorID, 50000, 2, 0, 0))
	require.NoError(t, err)
	_, err = store.RefreshSessions(ctx, rec.MentorSalaryID, model.MaxTotalSessions+1)
	assert.True(t, errs.IsValidation(err))
}

// Edit draft (bonus/potongan) dan refresh sesi bisa datang dalam urutan apa pun;
// total akhir selalu rate × sessions + bonus − deduction dari baris itu sendiri.
func TestSalaryStore_DraftEditAndRefreshCommute(t *testing.T) {
	const rate = int64(50000)

	tests := []struct {
		name         string
		refreshFirst bool
		wantSessions int
	}{
		{name: "edit lalu refresh", refreshFirst: false, wantSessions: 12},
		{name: "refresh lalu edit", refreshFirst: true, wantSessions: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewSalaryStore(testutil.PrepareDB(t))
			mentorID := uuid.New()

			rec, err := store.UpsertDraft(ctx, draftRow(mentorID, rate, 10, 0, 0))
			require.NoError(t, err)

			edit := func() {
				_, err := store.UpsertDraft(ctx, draftRow(mentorID, rate, 10, 20000, 5000))
				require.NoError(t, err)
			}
			refresh := func() {
				_, err := store.RefreshSessions(ctx, rec.MentorSalaryID, 12)
				require.NoError(t, err)
			}
			if tt.refreshFirst {
				refresh()
				edit()
			} else {
				edit()
				refresh()
			}

			out, err := store.GetByID(ctx, rec.MentorSalaryID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSessions, out.MentorSalaryTotalSessions)
			assert.Equal(t, int64(20000), out.MentorSalaryBonus)
			assert.Equal(t, int64(5000), out.MentorSalaryDeduction)
			assert.Equal(t, rate*int64(tt.wantSessions)+20000-5000, out.MentorSalaryTotalAmount)
			assert.Equal(t,
				model.ComputeTotal(out.MentorSalaryRatePerSession, out.MentorSalaryTotalSessions, out.MentorSalaryBonus, out.MentorSalaryDeduction),
				out.MentorSalaryTotalAmount)
		})
	}
}

func TestSalaryStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	store := NewSalaryStore(testutil.PrepareDB(t))

	a, b := uuid.New(), uuid.New()
	_, err := store.UpsertDraft(ctx, draftRow(a, 50000, 1, 0, 0))
	require.NoError(t, err)
	_, err = store.UpsertDraft(ctx, draftRow(b, 50000, 2, 0, 0))
	require.NoError(t, err)
	other := draftRow(a, 50000, 3, 0, 0)
	other.MentorSalaryMonth = 7
	_, err = store.UpsertDraft(ctx, other)
	require.NoError(t, err)

	june, year := 6, 2025
	rows, total, err := store.List(ctx, ListFilter{Month: &june, Year: &year})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	rows, total, err = store.List(ctx, ListFilter{Year: &year, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].MentorSalaryMonth)

	draft := model.SalaryStatusDraft
	_, total, err = store.List(ctx, ListFilter{MentorID: &a, Status: &draft})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, err = store.GetByPeriod(ctx, b, 7, 2025)
	assert.True(t, errs.IsNotFound(err))
}

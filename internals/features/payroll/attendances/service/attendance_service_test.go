package service

import (
	"context"
	"testing"
	"time"

	"bimbel_backend/internals/features/payroll/attendances/model"
	"bimbel_backend/internals/features/payroll/errs"
	mentorService "bimbel_backend/internals/features/payroll/mentors/service"
	testutil "bimbel_backend/internals/tests"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAttendanceService(t *testing.T) (*AttendanceService, *gorm.DB) {
	db := testutil.PrepareDB(t)
	return NewAttendanceService(db, mentorService.NewMentorResolver(db, nil, 0)), db
}

func markInput(mentorRef, scheduleID uuid.UUID, session int, status string) MarkInput {
	return MarkInput{
		ScheduleID:    scheduleID,
		SessionNumber: session,
		MentorRef:     mentorRef,
		Month:         6,
		Year:          2025,
		Status:        status,
		Date:          time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestAttendanceService_MarkIsIdempotentPerSlot(t *testing.T) {
	ctx := context.Background()
	svc, db := newAttendanceService(t)
	mentor := testutil.CreateMentor(t, db, 50000)
	schedule := uuid.New()

	first, created, err := svc.Mark(ctx, markInput(mentor.MentorUserID, schedule, 1, "Present"))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, mentor.MentorID, first.MentorAttendanceMentorID)
	assert.Equal(t, model.AttendanceStatusPresent, first.MentorAttendanceStatus)

	again, created, err := svc.Mark(ctx, markInput(mentor.MentorID, schedule, 1, "present"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.MentorAttendanceID, again.MentorAttendanceID)

	var n int64
	require.NoError(t, db.Model(&model.MentorAttendanceModel{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	_, created, err = svc.Mark(ctx, markInput(mentor.MentorID, schedule, 2, "present"))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestAttendanceService_MarkSlotTakenByOtherMentor(t *testing.T) {
	ctx := context.Background()
	svc, db := newAttendanceService(t)
	a := testutil.CreateMentor(t, db, 50000)
	b := testutil.CreateMentor(t, db, 60000)
	schedule := uuid.New()

	_, _, err := svc.Mark(ctx, markInput(a.MentorID, schedule, 1, "present"))
	require.NoError(t, err)

	_, _, err = svc.Mark(ctx, markInput(b.MentorID, schedule, 1, "present"))
	assert.True(t, errs.IsConflict(err))
}

func TestAttendanceService_MarkSoftDeletedSlot(t *testing.T) {
	ctx := context.Background()
	svc, db := newAttendanceService(t)
	mentor := testutil.CreateMentor(t, db, 50000)
	schedule := uuid.New()

	row, _, err := svc.Mark(ctx, markInput(mentor.MentorID, schedule, 1, "present"))
	require.NoError(t, err)
	require.NoError(t, db.Delete(row).Error)

	_, _, err = svc.Mark(ctx, markInput(mentor.MentorID, schedule, 1, "present"))
	assert.True(t, errs.IsConflict(err))
}

func TestAttendanceService_MarkValidation(t *testing.T) {
	ctx := context.Background()
	svc, db := newAttendanceService(t)
	mentor := testutil.CreateMentor(t, db, 50000)

	in := markInput(mentor.MentorID, uuid.Nil, 0, "hadir")
	in.Month = 13
	_, _, err := svc.Mark(ctx, in)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	fields := errs.Fields(err)
	for _, k := range []string{"schedule_id", "session_number", "status", "month"} {
		assert.Contains(t, fields, k)
	}

	_, _, err = svc.Mark(ctx, markInput(uuid.New(), uuid.New(), 1, "present"))
	assert.True(t, errs.IsNotFound(err))
}

func TestAttendanceService_CorrectChangesAggregate(t *testing.T) {
	ctx := context.Background()
	svc, db := newAttendanceService(t)
	mentor := testutil.CreateMentor(t, db, 50000)
	agg := NewAggregator(db, svc.Resolver)

	row, _, err := svc.Mark(ctx, markInput(mentor.MentorID, uuid.New(), 1, "absent"))
	require.NoError(t, err)

	n, err := agg.CountPresentSessions(ctx, mentor.MentorID, 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	status := "present"
	out, err := svc.Correct(ctx, row.MentorAttendanceID, CorrectInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceStatusPresent, out.MentorAttendanceStatus)

	n, err = agg.CountPresentSessions(ctx, mentor.MentorID, 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = svc.Correct(ctx, row.MentorAttendanceID, CorrectInput{})
	assert.True(t, errs.IsValidation(err))

	_, err = svc.Correct(ctx, uuid.New(), CorrectInput{Status: &status})
	assert.True(t, errs.IsNotFound(err))
}

func TestAttendanceService_ListForPeriod(t *testing.T) {
	ctx := context.Background()
	svc, db := newAttendanceService(t)
	mentor := testutil.CreateMentor(t, db, 50000)
	testutil.CreateAttendances(t, db, mentor.MentorID, 6, 2025, 3, model.AttendanceStatusPresent)
	testutil.CreateAttendances(t, db, mentor.MentorID, 6, 2025, 2, model.AttendanceStatusAbsent)

	rows, total, err := svc.ListForPeriod(ctx, mentor.MentorUserID, 6, 2025, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 2)

	_, _, err = svc.ListForPeriod(ctx, mentor.MentorID, 0, 2025, 0, 10)
	assert.True(t, errs.IsValidation(err))
}

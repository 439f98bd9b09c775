// Package testutil: DB sqlite in-memory + seed data untuk test payroll.
package testutil

import (
	"fmt"
	"testing"
	"time"

	database "bimbel_backend/internals/databases"
	attendanceModel "bimbel_backend/internals/features/payroll/attendances/model"
	mentorModel "bimbel_backend/internals/features/payroll/mentors/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PrepareDB: database baru per test (nama unik), sudah dimigrasi.
func PrepareDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateMentor: profil mentor aktif dengan user id acak.
func CreateMentor(t *testing.T, db *gorm.DB, rate int64) mentorModel.MentorModel {
	t.Helper()
	m := mentorModel.MentorModel{
		MentorUserID:         uuid.New(),
		MentorRatePerSession: rate,
		MentorIsActive:       true,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// CreateAttendances: n event dengan status tertentu untuk (mentor, month, year),
// masing-masing di slot jadwal yang berbeda.
func CreateAttendances(t *testing.T, db *gorm.DB, mentorID uuid.UUID, month, year, n int, status string) []attendanceModel.MentorAttendanceModel {
	t.Helper()
	rows := make([]attendanceModel.MentorAttendanceModel, 0, n)
	for i := 0; i < n; i++ {
		row := attendanceModel.MentorAttendanceModel{
			MentorAttendanceScheduleID:    uuid.New(),
			MentorAttendanceSessionNumber: 1,
			MentorAttendanceMonth:         month,
			MentorAttendanceYear:          year,
			MentorAttendanceMentorID:      mentorID,
			MentorAttendanceStatus:        status,
			MentorAttendanceDate:          time.Date(year, time.Month(month), 1+i%28, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(&row).Error)
		rows = append(rows, row)
	}
	return rows
}

func IntPtr(n int) *int       { return &n }
func Int64Ptr(n int64) *int64 { return &n }

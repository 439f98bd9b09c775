// Package payroll merakit komponen payroll mentor (resolver, aggregator, store, service).
package payroll

import (
	"time"

	attendanceService "bimbel_backend/internals/features/payroll/attendances/service"
	mentorService "bimbel_backend/internals/features/payroll/mentors/service"
	"bimbel_backend/internals/features/payroll/salaries/repository"
	salaryService "bimbel_backend/internals/features/payroll/salaries/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Module struct {
	Resolver   *mentorService.MentorResolver
	Aggregator *attendanceService.Aggregator
	Attendance *attendanceService.AttendanceService
	Store      *repository.SalaryStore
	Salaries   *salaryService.SalaryService
}

// NewModule: rdb boleh nil (cache mentor dimatikan).
func NewModule(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *Module {
	resolver := mentorService.NewMentorResolver(db, rdb, cacheTTL)
	agg := attendanceService.NewAggregator(db, resolver)
	store := repository.NewSalaryStore(db)
	return &Module{
		Resolver:   resolver,
		Aggregator: agg,
		Attendance: attendanceService.NewAttendanceService(db, resolver),
		Store:      store,
		Salaries:   salaryService.NewSalaryService(store, agg, resolver),
	}
}

// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"os"
	"strings"
	"time"
)

// Zona waktu operasional bimbel (laporan, tanggal kehadiran default).
const (
	EnvAppTimezone  = "APP_TIMEZONE"
	DefaultTimezone = "Asia/Jakarta"
)

// Location: APP_TIMEZONE → Asia/Jakarta → UTC.
func Location() *time.Location {
	if s := strings.TrimSpace(os.Getenv(EnvAppTimezone)); s != "" {
		if loc, err := time.LoadLocation(s); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// ToLocal mengonversi waktu dari DB (UTC) ke zona operasional. Zero time dikembalikan apa adanya.
func ToLocal(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Location())
}

// Versi pointer untuk kolom nullable (paid_at)
func ToLocalPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToLocal(*t)
	return &v
}

// Today: tanggal hari ini (00:00) di zona operasional.
func Today() time.Time {
	now := time.Now().In(Location())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

package mentors

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"bimbel_backend/internals/features/payroll/mentors/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MentorSeed: satu baris data_mentors.json
type MentorSeed struct {
	MentorUserID         string   `json:"mentor_user_id"`
	MentorFullName       string   `json:"mentor_full_name"`
	MentorRatePerSession int64    `json:"mentor_rate_per_session"`
	MentorSubjects       []string `json:"mentor_subjects"`
}

// SeedMentorsFromJSON: insert mentor yang belum ada (by mentor_user_id). Return jumlah yang di-insert.
func SeedMentorsFromJSON(db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Membaca file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("baca file seed: %w", err)
	}

	var seeds []MentorSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode JSON seed: %w", err)
	}

	inserted := 0
	for _, s := range seeds {
		userID, err := uuid.Parse(strings.TrimSpace(s.MentorUserID))
		if err != nil {
			log.Printf("⚠️ mentor_user_id %q tidak valid, lewati", s.MentorUserID)
			continue
		}
		if s.MentorRatePerSession < 0 {
			log.Printf("⚠️ tarif mentor %s negatif, lewati", userID)
			continue
		}

		var existing model.MentorModel
		err = db.Where("mentor_user_id = ?", userID).First(&existing).Error
		if err == nil {
			log.Printf("ℹ️ Mentor user %s sudah ada, lewati...", userID)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return inserted, fmt.Errorf("cek mentor %s: %w", userID, err)
		}

		m := model.MentorModel{
			MentorUserID:         userID,
			MentorRatePerSession: s.MentorRatePerSession,
			MentorIsActive:       true,
		}
		if name := strings.TrimSpace(s.MentorFullName); name != "" {
			m.MentorFullNameCache = &name
		}
		if len(s.MentorSubjects) > 0 {
			raw, _ := json.Marshal(s.MentorSubjects)
			m.MentorSubjects = datatypes.JSON(raw)
		}

		if err := db.Create(&m).Error; err != nil {
			log.Printf("❌ Gagal insert mentor %s: %v", userID, err)
			continue
		}
		inserted++
		log.Printf("✅ Berhasil insert mentor %s (%s)", m.DisplayName(), m.MentorID)
	}
	return inserted, nil
}

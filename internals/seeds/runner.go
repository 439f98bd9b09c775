package seeds

import (
	"log"
	"path/filepath"

	"bimbel_backend/internals/seeds/mentors"

	"gorm.io/gorm"
)

// DefaultDir: lokasi file JSON seed relatif ke root repo.
const DefaultDir = "internals/seeds"

func RunAllSeeds(db *gorm.DB, dir string) error {
	if dir == "" {
		dir = DefaultDir
	}

	//* Mentor
	n, err := mentors.SeedMentorsFromJSON(db, filepath.Join(dir, "mentors", "data_mentors.json"))
	if err != nil {
		return err
	}
	log.Printf("[INFO] seed mentor selesai: %d baru", n)
	return nil
}

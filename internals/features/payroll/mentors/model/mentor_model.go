// file: internals/features/payroll/mentors/model/mentor_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Model ===================== */

// MentorModel: profil mentor (id internal) yang terhubung ke akun user (id eksternal).
// Attendance & gaji selalu di-key dengan MentorID; MentorUserID hanya dipakai untuk resolve.
type MentorModel struct {
	MentorID     uuid.UUID `json:"mentor_id" gorm:"type:uuid;primaryKey;column:mentor_id"`
	MentorUserID uuid.UUID `json:"mentor_user_id" gorm:"type:uuid;not null;uniqueIndex:uq_mentor_user;column:mentor_user_id"`

	MentorFullNameCache *string `json:"mentor_full_name_cache,omitempty" gorm:"type:varchar(100);column:mentor_full_name_cache"`

	// Tarif per sesi saat ini (rupiah). Draft gaji men-snapshot nilai ini.
	MentorRatePerSession int64 `json:"mentor_rate_per_session" gorm:"not null;column:mentor_rate_per_session;check:chk_mentor_rate_nonneg,mentor_rate_per_session >= 0"`

	// Mapel yang diampu, mis. ["matematika","fisika"]
	MentorSubjects datatypes.JSON `json:"mentor_subjects,omitempty" gorm:"type:jsonb;column:mentor_subjects"`

	MentorIsActive bool `json:"mentor_is_active" gorm:"not null;column:mentor_is_active"`

	// Timestamps
	MentorCreatedAt time.Time      `json:"mentor_created_at" gorm:"not null;autoCreateTime;column:mentor_created_at"`
	MentorUpdatedAt time.Time      `json:"mentor_updated_at" gorm:"not null;autoUpdateTime;column:mentor_updated_at"`
	MentorDeletedAt gorm.DeletedAt `json:"-" gorm:"index;column:mentor_deleted_at"`
}

func (MentorModel) TableName() string { return "mentors" }

func (m *MentorModel) BeforeCreate(tx *gorm.DB) error {
	if m.MentorID == uuid.Nil {
		m.MentorID = uuid.New()
	}
	return nil
}

// DisplayName: nama cache, fallback ke id.
func (m *MentorModel) DisplayName() string {
	if m.MentorFullNameCache != nil && *m.MentorFullNameCache != "" {
		return *m.MentorFullNameCache
	}
	return m.MentorID.String()
}

// file: internals/features/payroll/mentors/service/mentor_resolver.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"bimbel_backend/internals/features/payroll/errs"
	"bimbel_backend/internals/features/payroll/mentors/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const cacheKeyPrefix = "mentor:profile:"

// MentorResolver memetakan referensi mentor (id profil ATAU user id) → id profil.
// Cache Redis opsional: Cache == nil berarti selalu ke DB.
type MentorResolver struct {
	DB    *gorm.DB
	Cache *redis.Client
	TTL   time.Duration
}

func NewMentorResolver(db *gorm.DB, cache *redis.Client, ttl time.Duration) *MentorResolver {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MentorResolver{DB: db, Cache: cache, TTL: ttl}
}

// Lookup: ambil profil mentor berdasarkan id profil atau user id.
func (r *MentorResolver) Lookup(ctx context.Context, ref uuid.UUID) (*model.MentorModel, error) {
	if ref == uuid.Nil {
		return nil, errs.Invalid("mentor_id", "wajib diisi")
	}
	var m model.MentorModel
	err := r.DB.WithContext(ctx).
		Where("mentor_id = ? OR mentor_user_id = ?", ref, ref).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("mentor %s tidak ditemukan", ref)
		}
		return nil, errs.Upstream(err, "lookup mentor")
	}
	return &m, nil
}

// Resolve: (id profil, ketemu?, error). Tidak ketemu bukan error.
func (r *MentorResolver) Resolve(ctx context.Context, ref uuid.UUID) (uuid.UUID, bool, error) {
	if ref == uuid.Nil {
		return uuid.Nil, false, nil
	}
	if id, ok := r.fromCache(ctx, ref); ok {
		return id, true, nil
	}

	m, err := r.Lookup(ctx, ref)
	if err != nil {
		if errs.IsNotFound(err) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}

	r.toCache(ctx, ref, m.MentorID)
	return m.MentorID, true, nil
}

func (r *MentorResolver) fromCache(ctx context.Context, ref uuid.UUID) (uuid.UUID, bool) {
	if r.Cache == nil {
		return uuid.Nil, false
	}
	val, err := r.Cache.Get(ctx, cacheKeyPrefix+ref.String()).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[WARN] redis get mentor %s: %v", ref, err)
		}
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (r *MentorResolver) toCache(ctx context.Context, ref, profileID uuid.UUID) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Set(ctx, cacheKeyPrefix+ref.String(), profileID.String(), r.TTL).Err(); err != nil {
		log.Printf("[WARN] redis set mentor %s: %v", ref, err)
	}
}

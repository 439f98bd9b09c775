// Package errs berisi taksonomi error payroll mentor.
//
// Semua error yang keluar dari service payroll bisa dicek dengan errors.Is
// terhadap salah satu sentinel di bawah; handler HTTP memetakannya ke status.
package errs

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrValidation: input tidak valid, ditolak sebelum menyentuh store.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound: record gaji / mentor tidak ada.
	ErrNotFound = errors.New("not found")
	// ErrStateConflict: transisi status tidak diizinkan (mis. edit/bayar record PAID).
	ErrStateConflict = errors.New("state conflict")
	// ErrUpstream: store atau sumber attendance gagal; tidak ada mutasi parsial.
	ErrUpstream = errors.New("upstream failure")
)

// ValidationError membawa pesan per field. errors.Is(err, ErrValidation) == true.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid: validation error untuk satu field.
func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

// InvalidFields dengan map lengkap (mis. hasil helper.ValidationFieldErrors).
func InvalidFields(fields map[string][]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func NotFound(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return errors.Wrapf(ErrStateConflict, format, args...)
}

// Upstream membungkus error store/driver. Pesan asli dipertahankan untuk log.
func Upstream(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ErrUpstream, "%s: %v", op, err)
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool   { return errors.Is(err, ErrStateConflict) }
func IsUpstream(err error) bool   { return errors.Is(err, ErrUpstream) }

// Fields mengambil map field → pesan dari error validasi (nil kalau bukan).
func Fields(err error) map[string][]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

package helper

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"bimbel_backend/internals/constants"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService adalah facade upload/hapus bukti transfer untuk controller.
- UploadProof: gambar → webp, pdf → apa adanya; return public URL
- DeleteByPublicURL: rollback kalau proses bayar gagal setelah upload
*/
type BlobService interface {
	UploadProof(ctx context.Context, dir, name string, fh *multipart.FileHeader) (publicURL string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS (OSSService)
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// Buat instance dari ENV. prefix opsional (contoh: "bimbel")
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) UploadProof(ctx context.Context, dir, name string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	switch constants.DetectProofKind(fh.Filename) {
	case constants.ProofKindImage:
		key, err := b.svc.UploadAsWebPToDir(ctx, dir, name, fh)
		if err != nil {
			return "", err
		}
		return b.svc.PublicURL(key), nil
	case constants.ProofKindPDF:
		key, _, err := b.svc.UploadRawToDir(ctx, dir, name, fh)
		if err != nil {
			return "", err
		}
		return b.svc.PublicURL(key), nil
	default:
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Bukti harus jpg/png/webp/pdf")
	}
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := ExtractKeyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	return b.svc.DeleteObject(ctx, key)
}

// --------------------------------------------------
// Helper kecil untuk controller
// --------------------------------------------------

// IsMultipart menilai request multipart/form-data
func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

// Nama-nama field umum untuk upload bukti
var defaultProofFields = []string{"proof_image", "file", "image"}

// GetProofFile mencari file dari beberapa kemungkinan field form.
// Jika tidak ada file, kembalikan (nil, nil) supaya controller bisa fallback ke field teks.
func GetProofFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gunakan multipart/form-data")
	}
	names := fieldNames
	if len(names) == 0 {
		names = defaultProofFields
	}
	for _, fn := range names {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, nil
}

// --------------------------------------------------
// Mock untuk unit test
// --------------------------------------------------

type MockBlobService struct {
	UploadProofFn       func(ctx context.Context, dir, name string, fh *multipart.FileHeader) (string, error)
	DeleteByPublicURLFn func(ctx context.Context, publicURL string) error
}

func (m *MockBlobService) UploadProof(ctx context.Context, dir, name string, fh *multipart.FileHeader) (string, error) {
	if m.UploadProofFn == nil {
		return "", errors.New("not implemented")
	}
	return m.UploadProofFn(ctx, dir, name, fh)
}

func (m *MockBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if m.DeleteByPublicURLFn == nil {
		return errors.New("not implemented")
	}
	return m.DeleteByPublicURLFn(ctx, publicURL)
}

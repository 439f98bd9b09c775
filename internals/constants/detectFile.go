package constants

import (
	"path/filepath"
	"strings"
)

// Jenis file bukti transfer gaji
const (
	ProofKindUnknown = 0
	ProofKindImage   = 1
	ProofKindPDF     = 2
)

// DetectProofKind: image (jpg/png/webp) di-recompress ke webp, pdf disimpan apa adanya.
func DetectProofKind(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return ProofKindImage
	case ".pdf":
		return ProofKindPDF
	default:
		return ProofKindUnknown
	}
}

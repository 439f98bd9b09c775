package constants

import "fmt"

// Role yang dibaca dari klaim JWT ("role") → c.Locals("userRole")
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleTeacher    = "teacher"
	RoleOwner      = "owner"
	RoleAccountant = "accountant"
)

// Template pesan error role
const (
	ErrOnlyTeachersCanAccess = "❌ Hanya teacher, admin, atau owner yang boleh mengakses fitur %s."
	ErrOnlyFinanceCanAccess  = "❌ Hanya accountant atau owner yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorFinance(feature string) string {
	return fmt.Sprintf(ErrOnlyFinanceCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	TeacherAndAbove = []string{
		RoleTeacher,
		RoleAdmin,
		RoleOwner,
	}

	// payroll mentor: pembuatan draft, pembayaran, rekalkulasi
	FinanceRoles = []string{
		RoleAccountant,
		RoleOwner,
	}
)

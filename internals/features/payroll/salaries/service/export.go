package service

import (
	"bytes"
	"fmt"

	"bimbel_backend/internals/helpers/dbtime"

	"github.com/xuri/excelize/v2"
)

const ExportSheetName = "Gaji Mentor"

var exportHeaders = []string{
	"Salary ID", "Mentor ID", "Bulan", "Tahun", "Tarif/Sesi", "Sesi (tersimpan)",
	"Sesi (realtime)", "Selisih", "Bonus", "Potongan", "Total", "Status", "Dibayar", "Bukti",
}

// BuildSalaryWorkbook: laporan gaji periode + kolom drift dalam satu sheet xlsx.
func BuildSalaryWorkbook(rows []SalaryWithSync) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ExportSheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for i, r := range rows {
		row := i + 2
		s := r.Salary
		paidAt, proof := "", ""
		if at := dbtime.ToLocalPtr(s.MentorSalaryPaidAt); at != nil {
			paidAt = at.Format("02-01-2006 15:04")
		}
		if s.MentorSalaryProofImage != nil {
			proof = *s.MentorSalaryProofImage
		}
		values := []interface{}{
			s.MentorSalaryID.String(), s.MentorSalaryMentorID.String(), s.MentorSalaryMonth, s.MentorSalaryYear,
			s.MentorSalaryRatePerSession, s.MentorSalaryTotalSessions,
			r.Sync.RealtimeSessions, r.Sync.Difference,
			s.MentorSalaryBonus, s.MentorSalaryDeduction, s.MentorSalaryTotalAmount,
			string(s.MentorSalaryStatus), paidAt, proof,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(ExportSheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	return f.WriteToBuffer()
}

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"bimbel_backend/internals/configs"
	database "bimbel_backend/internals/databases"
	"bimbel_backend/internals/features/payroll"
	salaryService "bimbel_backend/internals/features/payroll/salaries/service"
	"bimbel_backend/internals/seeds"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// openDB: env → config → koneksi postgres (tanpa redis; CLI jarang & singkat)
func openDB() (*gorm.DB, configs.Config) {
	configs.LoadEnv()
	cfg := configs.Load()
	return configs.InitCLIDB(cfg), cfg
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "AutoMigrate tabel mentors, mentor_attendances, mentor_salaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _ := openDB()
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ migrate selesai")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Isi data awal (profil mentor) dari file JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _ := openDB()
			if err := seeds.RunAllSeeds(db, dir); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ seed selesai")
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", seeds.DefaultDir, "folder file JSON seed")
	return cmd
}

func driftCmd() *cobra.Command {
	var month, year int
	var onlyDrift bool

	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Tampilkan gaji satu periode beserta selisih sesi vs attendance",
		Example: `  payrollctl drift --month 6 --year 2025
  payrollctl drift --month 6 --year 2025 --only-drift`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg := openDB()
			m := payroll.NewModule(db, nil, cfg.MentorCacheTTL)

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			report, err := m.Salaries.DriftReport(ctx, month, year)
			if err != nil {
				return err
			}
			return printDriftReport(cmd.OutOrStdout(), report, onlyDrift)
		},
	}

	cmd.Flags().IntVar(&month, "month", int(time.Now().Month()), "bulan (1..12)")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "tahun")
	cmd.Flags().BoolVar(&onlyDrift, "only-drift", false, "hanya tampilkan record yang out of sync")
	return cmd
}

func printDriftReport(w io.Writer, report []salaryService.SalaryWithSync, onlyDrift bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SALARY_ID\tMENTOR_ID\tSTATUS\tRECORDED\tREALTIME\tDIFF\tTOTAL")
	drifted := 0
	for _, r := range report {
		if r.Sync.IsOutOfSync {
			drifted++
		} else if onlyDrift {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%+d\t%d\n",
			r.Salary.MentorSalaryID, r.Salary.MentorSalaryMentorID, r.Salary.MentorSalaryStatus,
			r.Sync.RecordedSessions, r.Sync.RealtimeSessions, r.Sync.Difference, r.Salary.MentorSalaryTotalAmount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d record, %d out of sync\n", len(report), drifted)
	return err
}

func recalcCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Rekalkulasi total_sessions satu record gaji dari attendance",
		RunE: func(cmd *cobra.Command, args []string) error {
			salaryID, err := uuid.Parse(id)
			if err != nil {
				return fmt.Errorf("--id harus UUID valid: %w", err)
			}
			db, cfg := openDB()
			m := payroll.NewModule(db, nil, cfg.MentorCacheTTL)

			res, err := m.Salaries.Recalculate(cmd.Context(), salaryID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sessions %d → %d, total %d (status %s)\n",
				res.OldSessions, res.NewSessions, res.Salary.MentorSalaryTotalAmount, res.Salary.MentorSalaryStatus)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "salary id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

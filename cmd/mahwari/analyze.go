package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/mahwari/internal/db"
	"github.com/terraincognita07/mahwari/internal/logger"
	"github.com/terraincognita07/mahwari/internal/services"
)

func newAnalyzeCmd() *cobra.Command {
	var rawToday string
	cmd := &cobra.Command{
		Use:   "analyze [YYYY-MM-DD...]",
		Short: "Print cycle statistics and today's phase",
		Long:  "Analyze the given period start dates, or the stored history when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			defer logger.Sync(log)

			today := services.Today(time.Now(), cfg.Location)
			if rawToday != "" {
				today, err = services.ParseCalendarDate(rawToday)
				if err != nil {
					return fmt.Errorf("invalid --today %q: %w", rawToday, err)
				}
			}

			dates, err := parseStartDates(args)
			if err != nil {
				return err
			}
			if len(dates) == 0 {
				database, err := db.OpenSQLite(cfg.DBPath, log)
				if err != nil {
					return fmt.Errorf("database init failed: %w", err)
				}
				defer func() {
					_ = db.CloseSQLite(database)
				}()
				dates, err = db.NewRepositories(database).Cycles.ListStartDates()
				if err != nil {
					return fmt.Errorf("load cycle history: %w", err)
				}
			}

			return writeAnalysis(cmd.OutOrStdout(), services.NewCycleAnalyzer(dates), today)
		},
	}
	cmd.Flags().StringVar(&rawToday, "today", "", "evaluate the phase for this date instead of today")
	return cmd
}

func parseStartDates(args []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(args))
	for _, raw := range args {
		day, err := services.ParseCalendarDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", raw, err)
		}
		dates = append(dates, day)
	}
	return dates, nil
}

func writeAnalysis(out io.Writer, analyzer *services.CycleAnalyzer, today time.Time) error {
	summary := analyzer.Summary()
	fmt.Fprintf(out, "Average cycle length: %d days\n", summary.AverageCycleLength)
	fmt.Fprintf(out, "Irregular (PCOS screening): %t\n", summary.IsPCOS)

	dates := analyzer.Dates()
	if len(dates) == 0 {
		fmt.Fprintln(out, "No period start dates logged yet.")
		return nil
	}

	last := dates[len(dates)-1]
	phase, fertility := analyzer.Phase(today, last)
	fmt.Fprintf(out, "Last period: %s\n", services.FormatCalendarDate(last))
	fmt.Fprintf(out, "Next period: %s\n", services.FormatCalendarDate(analyzer.PredictNextPeriod(last)))
	fmt.Fprintf(out, "Cycle day: %d\n", services.CycleDay(today, last))
	fmt.Fprintf(out, "Phase: %s (fertility %s)\n", phase, fertility)
	fmt.Fprintf(out, "Exercise: %s\n", services.ExerciseGuide(phase))
	return nil
}

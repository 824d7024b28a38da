package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	holidayservice "github.com/cmlabs-hris/hris-attendance-go/internal/service/holiday"
	reportservice "github.com/cmlabs-hris/hris-attendance-go/internal/service/report"
	"github.com/spf13/cobra"
)

type options struct {
	snapshotPath string
	timezone     string
	thresholds   attendance.Thresholds
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "attendance-report",
		Short:         "Offline holiday resolution and attendance analysis",
		Long:          "Classify days and analyse monthly attendance from a company snapshot exported as JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.snapshotPath, "snapshot", "s", "snapshot.json", "Company snapshot file path")
	rootCmd.PersistentFlags().StringVar(&opts.timezone, "tz", "UTC", "Reference timezone when the company sets none")
	rootCmd.PersistentFlags().IntVar(&opts.thresholds.LateInHour, "late-in-hour", 9, "Default late-in hour")
	rootCmd.PersistentFlags().IntVar(&opts.thresholds.EarlyOutHour, "early-out-hour", 17, "Default early-out hour")
	rootCmd.PersistentFlags().Float64Var(&opts.thresholds.HalfDayMaxHours, "half-day-max-hours", 4, "Default half-day ceiling in hours")

	rootCmd.AddCommand(analyzeCmd(opts))
	rootCmd.AddCommand(checkCmd(opts))
	rootCmd.AddCommand(weeklyDatesCmd(opts))

	return rootCmd
}

func analyzeCmd(opts *options) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the monthly attendance analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := report.MonthlyAnalysisRequest{YearMonth: month}
			year, m, err := req.Resolve()
			if err != nil {
				return err
			}
			fallback, err := calendar.NewNormalizer(opts.timezone)
			if err != nil {
				return err
			}
			if err := opts.thresholds.Validate(); err != nil {
				return err
			}

			snap, err := loadSnapshot(opts.snapshotPath)
			if err != nil {
				return err
			}
			rules, err := snap.rules()
			if err != nil {
				return err
			}
			c := snap.company()

			analysis, err := reportservice.AnalyzeMonth(c, year, m, rules, snap.records(), c.Thresholds(opts.thresholds), c.Normalizer(fallback))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to analyse as YYYY-MM")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}

func checkCmd(opts *options) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Tell whether a date is a holiday",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := calendar.ParseDate(date)
			if err != nil {
				return err
			}
			snap, err := loadSnapshot(opts.snapshotPath)
			if err != nil {
				return err
			}
			rules, err := snap.rules()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), holidayservice.ClassifyDay(d, rules, snap.company().WeeklyOff()))
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Date to check as YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

// weeklyDatesCmd reads weekly-off days from --off, or from the snapshot when
// the flag is not given.
func weeklyDatesCmd(opts *options) *cobra.Command {
	var (
		month string
		off   string
	)

	cmd := &cobra.Command{
		Use:   "weekly-dates",
		Short: "List the weekly-off dates of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := report.MonthlyAnalysisRequest{YearMonth: month}
			year, m, err := req.Resolve()
			if err != nil {
				return err
			}

			var weeklyOff []calendar.Weekday
			if cmd.Flags().Changed("off") {
				weeklyOff, err = calendar.ParseWeekdays(off)
				if err != nil {
					return err
				}
			} else {
				snap, err := loadSnapshot(opts.snapshotPath)
				if err != nil {
					return err
				}
				weeklyOff = snap.Company.WeeklyOffDays
			}
			return writeJSON(cmd.OutOrStdout(), holidayservice.GenerateWeeklyHolidayDates(weeklyOff, year, m))
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM")
	cmd.Flags().StringVar(&off, "off", "", "Comma separated weekly-off weekdays, 0=Sunday")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

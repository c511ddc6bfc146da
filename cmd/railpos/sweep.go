package main

import (
	"context"
	"fmt"
	"time"

	"github.com/smallbiznis/railpos/internal/config"
	"github.com/smallbiznis/railpos/internal/overdue"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Mark past-due installments overdue",
	Example: `  railpos sweep
  railpos sweep --date 2024-02-10`,
	RunE: runSweep,
}

var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List overdue installments",
	RunE:  runOverdue,
}

func init() {
	rootCmd.AddCommand(sweepCmd, overdueCmd)

	sweepCmd.Flags().String("date", "", "Reconcile as of this date (YYYY-MM-DD, default: today)")
	overdueCmd.Flags().String("date", "", "List as of this date (YYYY-MM-DD, default: today)")
}

func sweepDay(cmd *cobra.Command, sweeper *overdue.Sweeper, cfg config.LedgerConfig) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("date")
	day, err := parseDay(raw, cfg.WithDefaults().Location)
	if err != nil {
		return time.Time{}, err
	}
	if day.IsZero() {
		day = sweeper.Today()
	}
	return day, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	var (
		sweeper *overdue.Sweeper
		cfg     config.LedgerConfig
	)
	return runOnce(cmd, func(ctx context.Context) error {
		day, err := sweepDay(cmd, sweeper, cfg)
		if err != nil {
			return err
		}
		changed, err := sweeper.Reconcile(ctx, day)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d installment(s) updated as of %s\n", changed, day.Format(time.DateOnly))
		return nil
	}, &sweeper, &cfg)
}

func runOverdue(cmd *cobra.Command, args []string) error {
	var (
		sweeper *overdue.Sweeper
		cfg     config.LedgerConfig
	)
	return runOnce(cmd, func(ctx context.Context) error {
		day, err := sweepDay(cmd, sweeper, cfg)
		if err != nil {
			return err
		}
		rows, err := sweeper.ListOverdue(ctx, day)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), rows)
	}, &sweeper, &cfg)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railpos/internal/clock"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "railpos",
	Short: "Point-of-sale billing and installment ledger",
	Long: `railpos records sales against a product catalog, splits credit sales into
installment schedules, applies payments and tracks overdue balances.

Configuration is read from the environment (and an optional .env file):
  DB_DRIVER, DB_DSN            database connection (sqlite or postgres)
  LEDGER_*                     billing policy
  SCHEDULER_*                  background worker
  SHOP_*                       receipt branding`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("terminal", os.Getenv("RAILPOS_TERMINAL"), "Till or terminal name recorded in logs")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseDay reads a YYYY-MM-DD flag value. An empty value yields the zero time.
func parseDay(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", raw, err)
	}
	return clock.Date(day, loc), nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}

package main

import (
	"context"
	"fmt"

	"github.com/smallbiznis/railpos/internal/migration"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the ledger tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			conn *gorm.DB
			log  *zap.Logger
		)
		return runOnce(cmd, func(ctx context.Context) error {
			if err := migration.RunContext(ctx, conn, log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		}, &conn, &log)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

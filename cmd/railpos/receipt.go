package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	catalogdomain "github.com/smallbiznis/railpos/internal/catalog/domain"
	"github.com/smallbiznis/railpos/internal/config"
	customerdomain "github.com/smallbiznis/railpos/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/railpos/internal/invoice/domain"
	"github.com/smallbiznis/railpos/internal/invoice/numbering"
	"github.com/smallbiznis/railpos/internal/invoice/render"
	"github.com/smallbiznis/railpos/internal/overdue"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var receiptCmd = &cobra.Command{
	Use:   "receipt <invoice-id>",
	Short: "Render an invoice receipt as HTML",
	Args:  cobra.ExactArgs(1),
	RunE:  runReceipt,
}

var nextNumberCmd = &cobra.Command{
	Use:   "next-number",
	Short: "Preview the next invoice number for a day",
	RunE:  runNextNumber,
}

func init() {
	rootCmd.AddCommand(receiptCmd, nextNumberCmd)

	receiptCmd.Flags().StringP("out", "o", "", "Write the receipt to this file instead of stdout")
	nextNumberCmd.Flags().String("date", "", "Day to number for (YYYY-MM-DD, default: today)")
}

func runReceipt(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")

	var (
		cfg       config.Config
		invoices  invoicedomain.Service
		customers customerdomain.Service
		products  catalogdomain.Service
		renderer  render.Renderer
	)
	return runOnce(cmd, func(ctx context.Context) error {
		inv, err := invoices.Get(ctx, id)
		if err != nil {
			return err
		}
		customer, err := customers.Get(ctx, inv.CustomerID)
		if err != nil {
			return err
		}

		names := make(map[string]string, len(inv.Items))
		for _, item := range inv.Items {
			product, err := products.Get(ctx, item.ProductID)
			if errors.Is(err, catalogdomain.ErrProductNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			names[item.ProductID.String()] = product.Name
		}

		html, err := renderer.RenderHTML(render.BuildInput(cfg.Shop, *inv, *customer, names))
		if err != nil {
			return err
		}
		if out == "" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		}
		return os.WriteFile(out, []byte(html), 0o644)
	}, &cfg, &invoices, &customers, &products, &renderer)
}

func runNextNumber(cmd *cobra.Command, args []string) error {
	var (
		conn     *gorm.DB
		cfg      config.LedgerConfig
		sweeper  *overdue.Sweeper
		numberer invoicedomain.Numberer
	)
	return runOnce(cmd, func(ctx context.Context) error {
		raw, _ := cmd.Flags().GetString("date")
		day, err := parseDay(raw, cfg.WithDefaults().Location)
		if err != nil {
			return err
		}
		if day.IsZero() {
			day = sweeper.Today()
		}

		var next string
		err = conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			next, err = numberer.Next(ctx, tx, day)
			return err
		})
		if err != nil {
			return err
		}
		seq, err := numbering.Sequence(next, day.Format("20060102"))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (sequence %d for %s)\n", next, seq, day.Format(time.DateOnly))
		return nil
	}, &conn, &cfg, &sweeper, &numberer)
}

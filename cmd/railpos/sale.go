package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/railpos/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/railpos/internal/payment/domain"
	"github.com/spf13/cobra"
)

var saleCmd = &cobra.Command{
	Use:   "sale",
	Short: "Record a sale",
	Example: `  # Cash sale of two products
  railpos sale --customer 1790 --item 1801:2 --item 1802:1

  # Three installments with an overridden unit price
  railpos sale --customer 1790 --item 1801:1@250.00 --method installment --installments 3`,
	RunE: runSale,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <invoice-id>",
	Short: "Cancel a sale and return its stock",
	Args:  cobra.ExactArgs(1),
	RunE:  runCancel,
}

var payCmd = &cobra.Command{
	Use:   "pay <installment-id> <amount>",
	Short: "Apply a payment to an installment",
	Args:  cobra.ExactArgs(2),
	RunE:  runPay,
}

func init() {
	rootCmd.AddCommand(saleCmd, cancelCmd, payCmd)

	saleCmd.Flags().String("customer", "", "Customer ID")
	saleCmd.Flags().StringArray("item", nil, "Line item as product-id:quantity[@unit-price], repeatable")
	saleCmd.Flags().String("method", string(invoicedomain.PaymentMethodCash), "Payment method (cash or installment)")
	saleCmd.Flags().Int("installments", 1, "Number of installments")
	saleCmd.Flags().String("notes", "", "Invoice notes")
	_ = saleCmd.MarkFlagRequired("customer")

	payCmd.Flags().String("notes", "", "Payment notes")
}

// parseSaleItem reads "product-id:quantity" with an optional "@unit-price".
func parseSaleItem(raw string) (invoicedomain.SaleItem, error) {
	var item invoicedomain.SaleItem

	line, price, hasPrice := strings.Cut(raw, "@")
	productRaw, qtyRaw, ok := strings.Cut(line, ":")
	if !ok {
		return item, fmt.Errorf("invalid item %q, want product-id:quantity", raw)
	}
	id, err := parseID(productRaw)
	if err != nil {
		return item, err
	}
	qty, err := strconv.Atoi(qtyRaw)
	if err != nil {
		return item, fmt.Errorf("invalid quantity in %q: %w", raw, err)
	}
	item.ProductID = id
	item.Quantity = qty

	if hasPrice {
		unit, err := decimal.NewFromString(price)
		if err != nil {
			return item, fmt.Errorf("invalid unit price in %q: %w", raw, err)
		}
		item.UnitPrice = &unit
	}
	return item, nil
}

func runSale(cmd *cobra.Command, args []string) error {
	customerRaw, _ := cmd.Flags().GetString("customer")
	itemsRaw, _ := cmd.Flags().GetStringArray("item")
	method, _ := cmd.Flags().GetString("method")
	installments, _ := cmd.Flags().GetInt("installments")
	notes, _ := cmd.Flags().GetString("notes")

	customerID, err := parseID(customerRaw)
	if err != nil {
		return err
	}
	req := invoicedomain.CreateSaleRequest{
		CustomerID:      customerID,
		PaymentMethod:   invoicedomain.PaymentMethod(strings.ToLower(method)),
		NumInstallments: installments,
		Notes:           notes,
	}
	for _, raw := range itemsRaw {
		item, err := parseSaleItem(raw)
		if err != nil {
			return err
		}
		req.Items = append(req.Items, item)
	}

	var invoices invoicedomain.Service
	return runOnce(cmd, func(ctx context.Context) error {
		inv, err := invoices.CreateSale(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), inv)
	}, &invoices)
}

func runCancel(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var invoices invoicedomain.Service
	return runOnce(cmd, func(ctx context.Context) error {
		if err := invoices.CancelSale(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "invoice %s cancelled\n", id)
		return nil
	}, &invoices)
}

func runPay(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}
	notes, _ := cmd.Flags().GetString("notes")

	var payments paymentdomain.Service
	return runOnce(cmd, func(ctx context.Context) error {
		res, err := payments.ApplyPayment(ctx, paymentdomain.ApplyPaymentRequest{
			InstallmentID: id,
			Amount:        amount,
			Notes:         notes,
		})
		if err != nil {
			return err
		}
		if res.Clamped {
			fmt.Fprintf(cmd.ErrOrStderr(), "requested %s, applied %s (remaining balance)\n",
				res.Requested.StringFixed(2), res.Payment.Amount.StringFixed(2))
		}
		return printJSON(cmd.OutOrStdout(), res.Payment)
	}, &payments)
}

package render

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/config"
	customerdomain "github.com/smallbiznis/railpos/internal/customer/domain"
	"github.com/smallbiznis/railpos/internal/invoice/domain"
)

// ReceiptInput is everything a printed receipt shows.
type ReceiptInput struct {
	Shop         ShopView
	Invoice      InvoiceView
	Customer     CustomerView
	Items        []LineItemView
	Installments []InstallmentView
}

type ShopView struct {
	Name         string
	Currency     string
	FooterNotes  string
	PrimaryColor string
}

type InvoiceView struct {
	Number        string
	Status        string
	PaymentMethod string
	IssuedAt      time.Time
	Total         decimal.Decimal
	Paid          decimal.Decimal
	Remaining     decimal.Decimal
	Notes         string
}

type CustomerView struct {
	Name  string
	Phone string
}

type LineItemView struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

type InstallmentView struct {
	Number  int
	DueDate time.Time
	Amount  decimal.Decimal
	Paid    decimal.Decimal
	Status  string
}

type Renderer interface {
	RenderHTML(input ReceiptInput) (string, error)
}

// BuildInput assembles a receipt. productNames maps product IDs to names;
// items of deleted products fall back to their ID.
func BuildInput(shop config.ShopConfig, inv domain.Invoice, customer customerdomain.Customer, productNames map[string]string) ReceiptInput {
	input := ReceiptInput{
		Shop: ShopView{
			Name:         shop.Name,
			Currency:     shop.Currency,
			FooterNotes:  shop.FooterNotes,
			PrimaryColor: shop.PrimaryColor,
		},
		Invoice: InvoiceView{
			Number:        inv.InvoiceNumber,
			Status:        string(inv.Status),
			PaymentMethod: string(inv.PaymentMethod),
			IssuedAt:      inv.CreatedAt,
			Total:         inv.TotalAmount,
			Paid:          inv.PaidAmount,
			Remaining:     inv.RemainingBalance(),
			Notes:         inv.Notes,
		},
		Customer: CustomerView{
			Name:  customer.Name,
			Phone: customer.Phone,
		},
	}

	for _, item := range inv.Items {
		name, ok := productNames[item.ProductID.String()]
		if !ok {
			name = fmt.Sprintf("Product #%s", item.ProductID)
		}
		input.Items = append(input.Items, LineItemView{
			Description: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.TotalPrice,
		})
	}
	for _, inst := range inv.Installments {
		input.Installments = append(input.Installments, InstallmentView{
			Number:  inst.InstallmentNumber,
			DueDate: inst.DueDate,
			Amount:  inst.Amount,
			Paid:    inst.PaidAmount,
			Status:  string(inst.Status),
		})
	}
	return input
}

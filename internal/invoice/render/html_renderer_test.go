package render

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railpos/internal/config"
	customerdomain "github.com/smallbiznis/railpos/internal/customer/domain"
	installmentdomain "github.com/smallbiznis/railpos/internal/installment/domain"
	"github.com/smallbiznis/railpos/internal/invoice/domain"
	"github.com/smallbiznis/railpos/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReceipt(t *testing.T) {
	inv := domain.Invoice{
		InvoiceNumber: "202401010001",
		TotalAmount:   money.MustParse("100.00"),
		PaidAmount:    money.MustParse("33.33"),
		PaymentMethod: domain.PaymentMethodInstallment,
		Status:        domain.StatusPartial,
		CreatedAt:     time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Items: []domain.InvoiceItem{
			{ProductID: snowflake.ID(10), Quantity: 2, UnitPrice: money.MustParse("30.00"), TotalPrice: money.MustParse("60.00")},
			{ProductID: snowflake.ID(11), Quantity: 1, UnitPrice: money.MustParse("40.00"), TotalPrice: money.MustParse("40.00")},
		},
		Installments: []installmentdomain.Installment{
			{InstallmentNumber: 1, Amount: money.MustParse("33.33"), PaidAmount: money.MustParse("33.33"), DueDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Status: installmentdomain.StatusPaid},
		},
	}
	customer := customerdomain.Customer{Name: "Ana <Shop>"}
	shop := config.ShopConfig{Name: "Corner Store", Currency: "idr", PrimaryColor: "red;}"}

	input := BuildInput(shop, inv, customer, map[string]string{"10": "Rice 5kg"})
	require.Len(t, input.Items, 2)
	assert.Equal(t, "Product #11", input.Items[1].Description)
	assert.Equal(t, "66.67", input.Invoice.Remaining.StringFixed(2))

	html, err := NewRenderer().RenderHTML(input)
	require.NoError(t, err)
	assert.Contains(t, html, "202401010001")
	assert.Contains(t, html, "Rice 5kg")
	assert.Contains(t, html, "IDR 60.00")
	assert.Contains(t, html, "IDR 66.67")
	assert.Contains(t, html, "2024-01-31")
	assert.Contains(t, html, "Ana &lt;Shop&gt;")
	assert.Contains(t, html, "#111827")
}

func TestRenderReceiptWithoutInstallments(t *testing.T) {
	input := ReceiptInput{
		Invoice: InvoiceView{Number: "202401010002", Total: money.MustParse("5"), Paid: money.MustParse("5")},
	}
	html, err := NewRenderer().RenderHTML(input)
	require.NoError(t, err)
	assert.Contains(t, html, "USD 5.00")
	assert.NotContains(t, html, "Installments")
}

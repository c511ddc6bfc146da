package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/money"
)

const receiptHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Receipt {{.Invoice.Number}}</title>
  <style>
    :root {
      --primary: {{.Shop.PrimaryColor}};
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .receipt {
      max-width: 640px;
      margin: 0 auto;
    }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid var(--primary);
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .meta {
      text-align: right;
      font-size: 14px;
    }
    .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .section {
      margin-bottom: 24px;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    .totals {
      margin-top: 8px;
      display: flex;
      justify-content: flex-end;
      font-size: 16px;
    }
    .totals strong {
      margin-left: 12px;
    }
    .footer {
      border-top: 1px solid #e5e7eb;
      padding-top: 16px;
      font-size: 12px;
      color: #6b7280;
    }
  </style>
</head>
<body>
  <div class="receipt">
    <div class="header">
      <div>
        <div><strong>{{.Shop.Name}}</strong></div>
        <div>{{.Customer.Name}}</div>
        {{if .Customer.Phone}}<div>{{.Customer.Phone}}</div>{{end}}
      </div>
      <div class="meta">
        <div class="label">Receipt</div>
        <div><strong>{{.Invoice.Number}}</strong></div>
        <div>Status: {{.Invoice.Status}}</div>
        <div>Payment: {{.Invoice.PaymentMethod}}</div>
        <div>Issued: {{formatDate .Invoice.IssuedAt}}</div>
      </div>
    </div>

    <div class="section">
      <table>
        <thead>
          <tr>
            <th>Item</th>
            <th>Qty</th>
            <th>Unit Price</th>
            <th>Amount</th>
          </tr>
        </thead>
        <tbody>
          {{range .Items}}
          <tr>
            <td>{{.Description}}</td>
            <td>{{.Quantity}}</td>
            <td>{{formatMoney .UnitPrice $.Shop.Currency}}</td>
            <td>{{formatMoney .Amount $.Shop.Currency}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
      <div class="totals">
        <span>Total</span>
        <strong>{{formatMoney .Invoice.Total .Shop.Currency}}</strong>
      </div>
      <div class="totals">
        <span>Paid</span>
        <strong>{{formatMoney .Invoice.Paid .Shop.Currency}}</strong>
      </div>
      <div class="totals">
        <span>Balance</span>
        <strong>{{formatMoney .Invoice.Remaining .Shop.Currency}}</strong>
      </div>
    </div>

    {{if .Installments}}
    <div class="section">
      <div class="label">Installments</div>
      <table>
        <thead>
          <tr>
            <th>#</th>
            <th>Due</th>
            <th>Amount</th>
            <th>Paid</th>
            <th>Status</th>
          </tr>
        </thead>
        <tbody>
          {{range .Installments}}
          <tr>
            <td>{{.Number}}</td>
            <td>{{formatDate .DueDate}}</td>
            <td>{{formatMoney .Amount $.Shop.Currency}}</td>
            <td>{{formatMoney .Paid $.Shop.Currency}}</td>
            <td>{{.Status}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
    </div>
    {{end}}

    <div class="footer">
      {{if .Invoice.Notes}}<div>{{.Invoice.Notes}}</div>{{end}}
      {{if .Shop.FooterNotes}}<div>{{.Shop.FooterNotes}}</div>{{end}}
    </div>
  </div>
</body>
</html>
`

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("receipt").Funcs(funcs).Parse(receiptHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input ReceiptInput) (string, error) {
	input.Shop.PrimaryColor = sanitizeColor(input.Shop.PrimaryColor)
	if strings.TrimSpace(input.Shop.Name) == "" {
		input.Shop.Name = "Receipt"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatMoney(amount decimal.Decimal, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%s %s", currency, amount.StringFixed(money.Scale))
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}

func sanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return "#111827"
}

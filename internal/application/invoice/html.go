package invoice

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/coldpitch/backend/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// invoiceTemplate is the built-in print layout. It is intentionally
// self-contained: no external assets, so the PDF renderer never waits
// on network fetches.
const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; margin: 40px; }
  h1 { font-size: 22px; margin-bottom: 0; }
  .muted { color: #666; font-size: 12px; }
  .header { display: flex; justify-content: space-between; margin-bottom: 32px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th { text-align: left; border-bottom: 2px solid #1a1a1a; padding: 8px 4px; font-size: 12px; text-transform: uppercase; }
  td { border-bottom: 1px solid #ddd; padding: 8px 4px; font-size: 13px; }
  .num { text-align: right; }
  .totals { margin-top: 16px; width: 280px; margin-left: auto; }
  .totals td { border: none; padding: 4px; }
  .totals .grand td { border-top: 2px solid #1a1a1a; font-weight: bold; }
  .status { display: inline-block; padding: 2px 10px; border: 1px solid #1a1a1a; border-radius: 10px; font-size: 11px; }
  .notes { margin-top: 32px; font-size: 12px; color: #444; }
</style>
</head>
<body>
  <div class="header">
    <div>
      <h1>Invoice {{.Number}}</h1>
      <div class="muted">Issued {{.IssueDate.Format "02 Jan 2006"}} &middot; Due {{.DueDate.Format "02 Jan 2006"}}</div>
    </div>
    <div>
      <span class="status">{{.Status}}</span>
    </div>
  </div>

  <div>
    <strong>Billed to</strong><br>
    {{.ClientName}}{{if .ClientEmail}}<br><span class="muted">{{.ClientEmail}}</span>{{end}}
  </div>

  <table>
    <thead>
      <tr><th>Description</th><th class="num">Qty</th><th class="num">Unit Price</th><th class="num">Amount</th></tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td>{{.Description}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{money .UnitPrice $.Currency}}</td>
        <td class="num">{{money .Amount $.Currency}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{money .Subtotal .Currency}}</td></tr>
    {{if not .Discount.IsZero}}<tr><td>Discount</td><td class="num">-{{money .Discount .Currency}}</td></tr>{{end}}
    <tr><td>Tax ({{.TaxRate}}%)</td><td class="num">{{money .TaxAmount .Currency}}</td></tr>
    <tr class="grand"><td>Total</td><td class="num">{{money .Total .Currency}}</td></tr>
    {{if .AmountPaid.IsPositive}}
    <tr><td>Paid</td><td class="num">{{money .AmountPaid .Currency}}</td></tr>
    <tr><td>Balance</td><td class="num">{{money .Outstanding .Currency}}</td></tr>
    {{end}}
  </table>

  {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
</body>
</html>`

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": formatMoney,
}).Parse(invoiceTemplate))

type invoiceTemplateData struct {
	*invoice.Invoice
	Outstanding decimal.Decimal
}

// renderInvoiceHTML renders the invoice into the built-in print layout
func renderInvoiceHTML(inv *invoice.Invoice) (string, error) {
	var sb strings.Builder
	data := invoiceTemplateData{Invoice: inv, Outstanding: inv.Outstanding()}
	if err := invoiceTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}
	return sb.String(), nil
}

func formatMoney(d decimal.Decimal, currency interface{}) string {
	return fmt.Sprintf("%v %s", currency, d.StringFixed(2))
}

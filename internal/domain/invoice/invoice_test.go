package invoice

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, desc string, qty, price float64) LineItem {
	t.Helper()
	item, err := NewLineItem(desc, decimal.NewFromFloat(qty), decimal.NewFromFloat(price))
	require.NoError(t, err)
	return item
}

func newTestInvoice(t *testing.T, items []LineItem, discount, taxRate float64) *Invoice {
	t.Helper()
	now := time.Now()
	inv, err := NewInvoice(
		"INV-2026-0001",
		"Acme Ltd",
		"billing@acme.test",
		nil,
		now,
		now.AddDate(0, 0, 14),
		items,
		decimal.NewFromFloat(discount),
		decimal.NewFromFloat(taxRate),
		uuid.New(),
	)
	require.NoError(t, err)
	return inv
}

func TestNewLineItem(t *testing.T) {
	t.Run("amount derived from quantity and price", func(t *testing.T) {
		item := mustItem(t, "Design work", 3, 10)
		assert.True(t, item.Amount.Equal(decimal.NewFromInt(30)))
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := NewLineItem("x", decimal.Zero, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := NewLineItem("x", decimal.NewFromInt(1), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("empty description rejected", func(t *testing.T) {
		_, err := NewLineItem("  ", decimal.NewFromInt(1), decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}

func TestInvoiceTotals(t *testing.T) {
	t.Run("subtotal discount and tax", func(t *testing.T) {
		items := []LineItem{
			mustItem(t, "Retainer", 2, 100),
			mustItem(t, "Setup", 1, 50),
			mustItem(t, "Hosting", 3, 10),
		}
		inv := newTestInvoice(t, items, 30, 10)

		assert.Equal(t, "280.00", inv.Subtotal.StringFixed(2))
		assert.Equal(t, "25.00", inv.TaxAmount.StringFixed(2))
		assert.Equal(t, "275.00", inv.Total.StringFixed(2))
	})

	t.Run("no discount no tax", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 1, 99.99)}, 0, 0)
		assert.Equal(t, "99.99", inv.Subtotal.StringFixed(2))
		assert.Equal(t, "0.00", inv.TaxAmount.StringFixed(2))
		assert.Equal(t, "99.99", inv.Total.StringFixed(2))
	})

	t.Run("totals rounded to 2dp", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 3, 33.333)}, 0, 7.5)
		assert.Equal(t, "100.00", inv.Subtotal.StringFixed(2))
		// 99.999 * 0.075 = 7.499925 -> 7.50
		assert.Equal(t, "7.50", inv.TaxAmount.StringFixed(2))
		assert.Equal(t, "107.50", inv.Total.StringFixed(2))
	})

	t.Run("updating pricing recomputes totals", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 2, 100)}, 0, 0)
		require.NoError(t, inv.UpdatePricing(decimal.NewFromInt(50), decimal.NewFromInt(5), uuid.New()))
		// (200 - 50) * 1.05 = 157.50
		assert.Equal(t, "157.50", inv.Total.StringFixed(2))
	})
}

func TestInvoiceRecordPayment(t *testing.T) {
	actor := uuid.New()

	t.Run("partial then full payment", func(t *testing.T) {
		items := []LineItem{
			mustItem(t, "Retainer", 2, 100),
			mustItem(t, "Setup", 1, 50),
			mustItem(t, "Hosting", 3, 10),
		}
		inv := newTestInvoice(t, items, 30, 10) // total 275.00

		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(100), actor))
		assert.Equal(t, PaymentPartial, inv.PaymentStatus)
		assert.NotEqual(t, StatusPaid, inv.Status)
		assert.Nil(t, inv.PaidDate)
		assert.Equal(t, "175.00", inv.Outstanding().StringFixed(2))

		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(175), actor))
		assert.Equal(t, PaymentPaid, inv.PaymentStatus)
		assert.Equal(t, StatusPaid, inv.Status)
		require.NotNil(t, inv.PaidDate)
		assert.True(t, inv.IsFullyPaid())
	})

	t.Run("paid date set once and never moved", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 1, 100)}, 0, 0)

		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(100), actor))
		require.NotNil(t, inv.PaidDate)
		first := *inv.PaidDate

		time.Sleep(time.Millisecond)
		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(10), actor))
		assert.Equal(t, first, *inv.PaidDate)
		assert.Equal(t, "110.00", inv.AmountPaid.StringFixed(2))
		assert.True(t, inv.Outstanding().IsZero())
	})

	t.Run("overpayment settles the invoice", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 1, 100)}, 0, 0)
		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(150), actor))
		assert.Equal(t, PaymentPaid, inv.PaymentStatus)
		assert.Equal(t, StatusPaid, inv.Status)
		assert.True(t, inv.Outstanding().IsZero())
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 1, 100)}, 0, 0)
		assert.Error(t, inv.RecordPayment(decimal.Zero, actor))
		assert.Error(t, inv.RecordPayment(decimal.NewFromInt(-5), actor))
		assert.Equal(t, PaymentUnpaid, inv.PaymentStatus)
	})

	t.Run("cancelled invoice rejects payment", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 1, 100)}, 0, 0)
		require.NoError(t, inv.Cancel(actor))
		assert.Error(t, inv.RecordPayment(decimal.NewFromInt(10), actor))
	})

	t.Run("events published per payment", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 1, 100)}, 0, 0)
		inv.ClearDomainEvents()

		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(40), actor))
		require.Len(t, inv.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeInvoicePartiallyPaid, inv.GetDomainEvents()[0].EventType())

		inv.ClearDomainEvents()
		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(60), actor))
		require.Len(t, inv.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeInvoicePaid, inv.GetDomainEvents()[0].EventType())
	})
}

func TestInvoiceLifecycle(t *testing.T) {
	actor := uuid.New()

	t.Run("mark sent", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 1, 100)}, 0, 0)
		require.NoError(t, inv.MarkSent(actor))
		assert.Equal(t, StatusSent, inv.Status)
	})

	t.Run("mark overdue", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 1, 100)}, 0, 0)
		require.NoError(t, inv.MarkSent(actor))

		assert.Error(t, inv.MarkOverdue(inv.DueDate.Add(-time.Hour)))
		require.NoError(t, inv.MarkOverdue(inv.DueDate.Add(time.Hour)))
		assert.Equal(t, StatusOverdue, inv.Status)

		// idempotent
		require.NoError(t, inv.MarkOverdue(inv.DueDate.Add(2*time.Hour)))
	})

	t.Run("paid invoice cannot be cancelled", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 1, 100)}, 0, 0)
		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(100), actor))
		assert.Error(t, inv.Cancel(actor))
	})

	t.Run("paid invoice cannot be edited", func(t *testing.T) {
		inv := newTestInvoice(t, []LineItem{mustItem(t, "Work", 1, 100)}, 0, 0)
		require.NoError(t, inv.RecordPayment(decimal.NewFromInt(100), actor))
		assert.Error(t, inv.UpdateItems([]LineItem{mustItem(t, "Other", 1, 5)}, actor))
		assert.Error(t, inv.UpdatePricing(decimal.Zero, decimal.Zero, actor))
	})
}

func TestInvoiceNumbering(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		assert.Equal(t, "INV-2026-0001", FormatNumber(2026, 1))
		assert.Equal(t, "INV-2026-0042", FormatNumber(2026, 42))
		assert.Equal(t, "INV-2026-10000", FormatNumber(2026, 10000))
	})

	t.Run("sequence continues within a year", func(t *testing.T) {
		assert.Equal(t, "INV-2026-0008", NextNumber(2026, "INV-2026-0007"))
	})

	t.Run("sequence resets on year rollover", func(t *testing.T) {
		assert.Equal(t, "INV-2027-0001", NextNumber(2027, "INV-2026-0912"))
	})

	t.Run("empty last number starts the sequence", func(t *testing.T) {
		assert.Equal(t, "INV-2026-0001", NextNumber(2026, ""))
	})

	t.Run("parse", func(t *testing.T) {
		year, seq, ok := ParseNumber("INV-2026-0042")
		require.True(t, ok)
		assert.Equal(t, 2026, year)
		assert.Equal(t, 42, seq)

		_, _, ok = ParseNumber("garbage")
		assert.False(t, ok)
	})
}

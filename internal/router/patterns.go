package router

import (
	"maps"
	"strings"

	"github.com/jkaninda/hesabu/internal/catalog"
)

// Sentinel scores for pattern-backed suggestions. The primary must stay
// strictly above the alternative so rank order is fixed.
const (
	patternPrimaryScore     = 10
	patternAlternativeScore = 8
)

// templateAutoDate marks pattern params that should be filled from
// whatever date range the query resolved to, or left empty when none did.
const templateAutoDate = "auto_date_this_month"

// Pattern maps idiomatic phrases straight to a tool, bypassing keyword
// scoring. Exactly one of Params and ParamTemplate is set. Phrases are
// lowercase and tried as plain substrings in declaration order; entry
// order matters where one entry's phrase contains another's ("unpaid
// invoices" must come before "paid invoices").
type Pattern struct {
	Phrases         []string
	Tool            string
	Params          map[string]any
	ParamTemplate   string
	AlternativeTool string
	Confidence      Confidence
}

var patterns = []Pattern{
	// Invoices by payment state.
	{
		Phrases:         []string{"unpaid invoices", "outstanding invoices", "faktur belum dibayar", "tagihan belum dibayar"},
		Tool:            "invoice_list_sales",
		Params:          map[string]any{"status_id": catalog.InvoiceStatusUnpaid},
		AlternativeTool: "invoice_list_purchases",
		Confidence:      ConfidenceDefinitive,
	},
	{
		Phrases:         []string{"overdue invoices", "faktur jatuh tempo", "tagihan jatuh tempo"},
		Tool:            "invoice_list_sales",
		Params:          map[string]any{"status_id": catalog.InvoiceStatusOverdue},
		AlternativeTool: "contact_receivables",
		Confidence:      ConfidenceDefinitive,
	},
	{
		Phrases:    []string{"paid invoices", "faktur lunas", "faktur sudah dibayar"},
		Tool:       "invoice_list_sales",
		Params:     map[string]any{"status_id": catalog.InvoiceStatusPaid},
		Confidence: ConfidenceDefinitive,
	},

	// Sales and revenue summaries over a spoken period.
	{
		Phrases:       []string{"sales this month", "sales this week", "sales today", "today's sales", "penjualan bulan ini", "penjualan minggu ini", "penjualan hari ini"},
		Tool:          "sales_summary",
		ParamTemplate: templateAutoDate,
		Confidence:    ConfidenceDefinitive,
	},
	{
		Phrases:       []string{"monthly revenue", "revenue this month", "omzet bulan ini", "pendapatan bulan ini"},
		Tool:          "sales_summary",
		ParamTemplate: templateAutoDate,
		Confidence:    ConfidenceDefinitive,
	},

	// Financial statements.
	{
		Phrases:    []string{"profit and loss", "profit & loss", "p&l", "laba rugi", "untung rugi"},
		Tool:       "financial_profit_loss",
		Params:     map[string]any{},
		Confidence: ConfidenceDefinitive,
	},
	{
		Phrases:       []string{"profit this month", "laba bulan ini"},
		Tool:          "financial_profit_loss",
		ParamTemplate: templateAutoDate,
		Confidence:    ConfidenceDefinitive,
	},
	{
		Phrases:    []string{"balance sheet", "neraca", "posisi keuangan"},
		Tool:       "financial_balance_sheet",
		Params:     map[string]any{},
		Confidence: ConfidenceDefinitive,
	},
	{
		Phrases:    []string{"cash flow", "arus kas", "aliran kas"},
		Tool:       "financial_cash_flow",
		Params:     map[string]any{},
		Confidence: ConfidenceDefinitive,
	},
	{
		Phrases:       []string{"expense breakdown", "expenses by category", "rincian biaya", "rincian pengeluaran"},
		Tool:          "financial_expense_summary",
		ParamTemplate: templateAutoDate,
		Confidence:    ConfidenceDefinitive,
	},
	{
		Phrases:       []string{"tax report", "laporan pajak", "rekap pajak"},
		Tool:          "tax_summary",
		ParamTemplate: templateAutoDate,
		Confidence:    ConfidenceDefinitive,
	},

	// Rankings.
	{
		Phrases:         []string{"top customers", "best customers", "pelanggan terbaik", "top pelanggan"},
		Tool:            "sales_by_customer_totals",
		ParamTemplate:   templateAutoDate,
		AlternativeTool: "contact_list",
		Confidence:      ConfidenceDefinitive,
	},
	{
		Phrases:       []string{"best sellers", "best selling products", "produk terlaris", "barang terlaris"},
		Tool:          "sales_by_product_totals",
		ParamTemplate: templateAutoDate,
		Confidence:    ConfidenceDefinitive,
	},

	// Money owed, both directions.
	{
		Phrases:    []string{"who owes me", "outstanding receivables", "piutang pelanggan"},
		Tool:       "contact_receivables",
		Params:     map[string]any{},
		Confidence: ConfidenceDefinitive,
	},
	{
		Phrases:    []string{"what i owe", "money i owe", "hutang saya", "utang saya"},
		Tool:       "contact_payables",
		Params:     map[string]any{},
		Confidence: ConfidenceDefinitive,
	},

	// Stock.
	{
		Phrases:    []string{"low stock", "out of stock", "stok menipis", "stok habis"},
		Tool:       "product_stock_list",
		Params:     map[string]any{"low_stock": true},
		Confidence: ConfidenceDefinitive,
	},
	{
		Phrases:         []string{"stock check", "stock levels", "cek stok", "level stok"},
		Tool:            "product_stock_list",
		Params:          map[string]any{},
		AlternativeTool: "product_list",
		Confidence:      ConfidenceDefinitive,
	},

	// Deliveries.
	{
		Phrases:         []string{"pending deliveries", "undelivered orders", "pengiriman tertunda", "belum dikirim"},
		Tool:            "delivery_list",
		Params:          map[string]any{"status_id": catalog.DeliveryStatusPending},
		AlternativeTool: "order_list_sales",
		Confidence:      ConfidenceDefinitive,
	},

	// Contact directories.
	{
		Phrases:    []string{"customer list", "list of customers", "daftar pelanggan"},
		Tool:       "contact_list",
		Params:     map[string]any{"type_id": catalog.ContactTypeCustomer},
		Confidence: ConfidenceDefinitive,
	},
	{
		Phrases:    []string{"vendor list", "supplier list", "daftar pemasok", "daftar vendor"},
		Tool:       "contact_list",
		Params:     map[string]any{"type_id": catalog.ContactTypeVendor},
		Confidence: ConfidenceDefinitive,
	},

	// Payments.
	{
		Phrases:       []string{"recent payments", "latest payments", "pembayaran terakhir", "pembayaran terbaru"},
		Tool:          "payment_list",
		ParamTemplate: templateAutoDate,
		Confidence:    ConfidenceDefinitive,
	},

	// Vague invoice questions; search is the safer of two readings.
	{
		Phrases:         []string{"invoice status", "status faktur", "cek faktur"},
		Tool:            "invoice_search",
		Params:          map[string]any{},
		AlternativeTool: "invoice_detail",
		Confidence:      ConfidenceContextDependent,
	},
}

// resolveParams materializes the entry's parameters. Literal params are
// cloned so later steps never write into the static table; the date
// template fills from the resolved range, or stays empty when the query
// carried no date.
func (p *Pattern) resolveParams(dr *DateRange) map[string]any {
	if p.ParamTemplate == templateAutoDate {
		if dr == nil {
			return map[string]any{}
		}
		return map[string]any{"date_from": dr.From, "date_to": dr.To}
	}
	return maps.Clone(p.Params)
}

// matchPattern returns the first pattern with a phrase contained in the
// lowered query, or nil. No normalization and no fuzz: this layer is for
// exact idiomatic phrasing only.
func matchPattern(query string) *Pattern {
	q := strings.ToLower(query)
	for i := range patterns {
		for _, ph := range patterns[i].Phrases {
			if strings.Contains(q, ph) {
				return &patterns[i]
			}
		}
	}
	return nil
}

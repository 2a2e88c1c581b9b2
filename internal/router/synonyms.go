package router

import (
	"sort"
	"strings"
)

// synonymMap sends alternate terms, English and Indonesian, to the
// canonical term the rest of the pipeline reasons about. Keys and values
// are lowercase; values must not themselves be keys.
var synonymMap = map[string]string{
	// Invoices.
	"invoices": "invoice",
	"bill":     "invoice",
	"bills":    "invoice",
	"faktur":   "invoice",
	"tagihan":  "invoice",

	// Sales and revenue.
	"revenue":    "sales",
	"income":     "sales",
	"turnover":   "sales",
	"omzet":      "sales",
	"omset":      "sales",
	"pendapatan": "sales",
	"penjualan":  "sales",

	// Purchases and orders.
	"purchases": "purchase",
	"pembelian": "purchase",
	"orders":    "order",
	"pesanan":   "order",

	// Contacts.
	"customers": "customer",
	"client":    "customer",
	"clients":   "customer",
	"buyer":     "customer",
	"buyers":    "customer",
	"pelanggan": "customer",
	"pembeli":   "customer",
	"vendors":   "vendor",
	"supplier":  "vendor",
	"suppliers": "vendor",
	"pemasok":   "vendor",
	"contacts":  "contact",
	"kontak":    "contact",

	// Products and stock.
	"products":   "product",
	"item":       "product",
	"items":      "product",
	"goods":      "product",
	"produk":     "product",
	"barang":     "product",
	"inventory":  "stock",
	"stok":       "stock",
	"persediaan": "stock",

	// Deliveries.
	"deliveries": "delivery",
	"shipment":   "delivery",
	"shipments":  "delivery",
	"shipping":   "delivery",
	"pengiriman": "delivery",

	// Financials.
	"laba":        "profit",
	"keuntungan":  "profit",
	"untung":      "profit",
	"rugi":        "loss",
	"kerugian":    "loss",
	"saldo":       "balance",
	"balances":    "balance",
	"kas":         "cash",
	"rekening":    "bank",
	"expenses":    "expense",
	"cost":        "expense",
	"costs":       "expense",
	"spending":    "expense",
	"biaya":       "expense",
	"pengeluaran": "expense",
	"beban":       "expense",

	// Payments, tax, balances owed.
	"payments":    "payment",
	"pembayaran":  "payment",
	"taxes":       "tax",
	"pajak":       "tax",
	"ppn":         "tax",
	"receivables": "receivable",
	"piutang":     "receivable",
	"payables":    "payable",
	"hutang":      "payable",
	"utang":       "payable",
	"debts":       "payable",
}

// termToTools indexes canonical terms to the tools they commonly reach.
// It is a candidate hint for the router, never a hard filter; every name
// must exist in the catalog.
var termToTools = map[string][]string{
	"invoice":    {"invoice_list_sales", "invoice_list_purchases", "invoice_detail", "invoice_search"},
	"sales":      {"invoice_list_sales", "order_list_sales", "sales_summary", "sales_by_product_totals", "sales_by_customer_totals"},
	"purchase":   {"invoice_list_purchases", "order_list_purchases"},
	"order":      {"order_list_sales", "order_list_purchases", "order_detail"},
	"customer":   {"contact_list", "contact_search", "contact_receivables", "sales_by_customer_totals"},
	"vendor":     {"contact_list", "contact_payables"},
	"contact":    {"contact_list", "contact_detail", "contact_search"},
	"product":    {"product_list", "product_detail", "product_search", "product_stock_list", "sales_by_product_totals"},
	"stock":      {"product_stock_list"},
	"delivery":   {"delivery_list", "delivery_detail"},
	"profit":     {"financial_profit_loss"},
	"loss":       {"financial_profit_loss"},
	"balance":    {"financial_bank_balances", "financial_balance_sheet"},
	"bank":       {"financial_bank_balances"},
	"cash":       {"financial_cash_flow", "financial_bank_balances"},
	"expense":    {"financial_expense_summary"},
	"payment":    {"payment_list"},
	"tax":        {"tax_summary"},
	"receivable": {"contact_receivables"},
	"payable":    {"contact_payables"},
}

// normalizeTerm lowers the term and resolves it through the synonym map.
// Unknown terms come back lowered but otherwise unchanged; this never fails.
func normalizeTerm(term string) string {
	t := strings.ToLower(term)
	if canonical, ok := synonymMap[t]; ok {
		return canonical
	}
	return t
}

// synonymKeys returns the synonym map's keys sorted, for use as the fuzzy
// matcher's candidate list. Sorted order keeps tie-breaks deterministic.
func synonymKeys() []string {
	keys := make([]string, 0, len(synonymMap))
	for k := range synonymMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package catalog holds the static table of accounting tools exposed over
// MCP, plus the keyword hints used to rank them against free-text queries.
// Everything here is fixed at compile time and read-only after load.
package catalog

// Entry describes one exposed tool: its wire name, a one-line purpose shown
// to clients, and the parameters it accepts in declaration order.
type Entry struct {
	Name      string   `json:"name" yaml:"name"`
	Purpose   string   `json:"purpose" yaml:"purpose"`
	KeyParams []string `json:"key_params,omitempty" yaml:"key_params,omitempty"`
}

// Invoice status ids as used by the accounting API.
const (
	InvoiceStatusDraft   = 1
	InvoiceStatusUnpaid  = 2
	InvoiceStatusOverdue = 3
	InvoiceStatusPaid    = 4
	InvoiceStatusVoid    = 5
)

// Contact type ids.
const (
	ContactTypeCustomer = 1
	ContactTypeVendor   = 2
)

// Delivery status ids.
const (
	DeliveryStatusPending   = 1
	DeliveryStatusShipped   = 2
	DeliveryStatusDelivered = 3
)

// entries is the full tool catalog, grouped by domain prefix.
// Order is presentation order, not rank.
var entries = []Entry{
	// Invoices.
	{Name: "invoice_list_sales", Purpose: "List sales invoices, optionally filtered by period, status, or customer.", KeyParams: []string{"date_from", "date_to", "status_id", "contact_id"}},
	{Name: "invoice_list_purchases", Purpose: "List purchase invoices, optionally filtered by period, status, or vendor.", KeyParams: []string{"date_from", "date_to", "status_id", "contact_id"}},
	{Name: "invoice_detail", Purpose: "Show one invoice with its line items and payment history.", KeyParams: []string{"invoice_id"}},
	{Name: "invoice_search", Purpose: "Search invoices by number or memo text.", KeyParams: []string{"keyword"}},

	// Orders.
	{Name: "order_list_sales", Purpose: "List sales orders, optionally filtered by period or status.", KeyParams: []string{"date_from", "date_to", "status_id"}},
	{Name: "order_list_purchases", Purpose: "List purchase orders, optionally filtered by period or status.", KeyParams: []string{"date_from", "date_to", "status_id"}},
	{Name: "order_detail", Purpose: "Show one order with its line items.", KeyParams: []string{"order_id"}},

	// Contacts.
	{Name: "contact_list", Purpose: "List contacts, optionally filtered by type (customer or vendor).", KeyParams: []string{"type_id"}},
	{Name: "contact_detail", Purpose: "Show one contact with outstanding balances.", KeyParams: []string{"contact_id"}},
	{Name: "contact_search", Purpose: "Search contacts by name, email, or phone.", KeyParams: []string{"keyword"}},
	{Name: "contact_receivables", Purpose: "Outstanding receivables per customer.", KeyParams: []string{"contact_id"}},
	{Name: "contact_payables", Purpose: "Outstanding payables per vendor.", KeyParams: []string{"contact_id"}},

	// Products.
	{Name: "product_list", Purpose: "List products and services.", KeyParams: []string{"category_id"}},
	{Name: "product_detail", Purpose: "Show one product with pricing and stock.", KeyParams: []string{"product_id"}},
	{Name: "product_search", Purpose: "Search products by name or code.", KeyParams: []string{"keyword"}},
	{Name: "product_stock_list", Purpose: "Stock levels across warehouses.", KeyParams: []string{"warehouse_id", "low_stock"}},

	// Deliveries.
	{Name: "delivery_list", Purpose: "List deliveries, optionally filtered by period or status.", KeyParams: []string{"date_from", "date_to", "status_id"}},
	{Name: "delivery_detail", Purpose: "Show one delivery with its tracking state.", KeyParams: []string{"delivery_id"}},

	// Financial reports.
	{Name: "financial_profit_loss", Purpose: "Profit and loss statement for a period.", KeyParams: []string{"date_from", "date_to"}},
	{Name: "financial_balance_sheet", Purpose: "Balance sheet as of a date.", KeyParams: []string{"date_to"}},
	{Name: "financial_cash_flow", Purpose: "Cash flow statement for a period.", KeyParams: []string{"date_from", "date_to"}},
	{Name: "financial_bank_balances", Purpose: "Current balances of bank and cash accounts."},
	{Name: "financial_expense_summary", Purpose: "Expenses grouped by category for a period.", KeyParams: []string{"date_from", "date_to"}},

	// Sales analytics.
	{Name: "sales_summary", Purpose: "Sales totals for a period.", KeyParams: []string{"date_from", "date_to"}},
	{Name: "sales_by_product_totals", Purpose: "Sales totals grouped by product.", KeyParams: []string{"date_from", "date_to"}},
	{Name: "sales_by_customer_totals", Purpose: "Sales totals grouped by customer.", KeyParams: []string{"date_from", "date_to"}},

	// Payments and tax.
	{Name: "payment_list", Purpose: "List received and sent payments.", KeyParams: []string{"date_from", "date_to", "contact_id"}},
	{Name: "tax_summary", Purpose: "Tax collected and owed for a period.", KeyParams: []string{"date_from", "date_to"}},
}

// byName is built once at init for O(1) lookups.
var byName = func() map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Name] = e
	}
	return m
}()

// Entries returns the full catalog in declaration order.
// The returned slice is shared; callers must not modify it.
func Entries() []Entry {
	return entries
}

// Lookup returns the entry for name, or false when the tool is unknown.
func Lookup(name string) (Entry, bool) {
	e, ok := byName[name]
	return e, ok
}

// Names returns all tool names in catalog order.
func Names() []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

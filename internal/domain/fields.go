package domain

// Canonical extracted-field names shared across the pipeline stages.
const (
	FieldVendorName      = "vendor_name"
	FieldInvoiceNumber   = "invoice_number"
	FieldInvoiceDate     = "invoice_date"
	FieldTransactionDate = "transaction_date"
	FieldDueDate         = "due_date"
	FieldSubtotal        = "subtotal"
	FieldTaxAmount       = "tax_amount"
	FieldTotalAmount     = "total_amount"
	FieldCurrency        = "currency"
	FieldPaymentMethod   = "payment_method"
	FieldCategory        = "category"
	FieldGLAccount       = "gl_account"

	// Business card fields
	FieldFullName    = "full_name"
	FieldTitle       = "title"
	FieldCompanyName = "company_name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldWebsite     = "website"
	FieldAddress     = "address"
)

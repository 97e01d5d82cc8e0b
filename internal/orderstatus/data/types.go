package data

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is a preliminary label produced by the classifier. After enrichment the
// final status of a record may be free text from the legacy system instead.
type Status string

const (
	DeliveredStatus                   = Status("Delivered")
	DeliveredSOCancelledStatus        = Status("Delivered - SO Cancelled")
	CancelledOrderStatus              = Status("Cancelled Order")
	PendingForReceivingStatus         = Status("Pending for Receiving")
	ReturnToVendorStatus              = Status("Return to Vendor")
	ReturnToVendorCancelledStatus     = Status("Return to Vendor Cancelled Order")
	PendingForDeliveryStatus          = Status("Pending for Delivery")
	AfterReceivedCancelledOrderStatus = Status("After Received Cancelled Order")
	WorkOrderRaisedStatus             = Status("Work Order Raised")
)

// TextSentinel replaces absent text columns.
const TextSentinel = "0"

type VoucherStatus int

const (
	VoucherStatusInTransit VoucherStatus = 3
	VoucherStatusClosed    VoucherStatus = 4
)

type VoucherType int

const (
	VoucherTypeInbound  VoucherType = 0
	VoucherTypeOutbound VoucherType = 1
)

// JoinedOrderRecord is one sales-order line joined with its invoice, voucher and
// tender data. Absent numbers are zero and absent text is TextSentinel.
type JoinedOrderRecord struct {
	CreatedDate   time.Time
	PackageNo     string
	ItemCode      string
	ShipDate      string
	CustomerPhone string
	CustomerName  string
	EmployeeLogin string

	Quantity        decimal.Decimal
	OriginalPrice   decimal.Decimal
	Price           decimal.Decimal
	Discount        decimal.Decimal
	InvoicePrice    decimal.Decimal
	InvoiceDiscount decimal.Decimal
	TotalDeposit    decimal.Decimal
	GiftCardAmount  decimal.Decimal

	// InvoiceMatched is set when an invoice line carries the same package.
	InvoiceMatched bool
	// Cancelled is the sales order cancel flag. It qualifies both the invoice and
	// the dependent-document branches.
	Cancelled            bool
	HasDependentDocument bool

	VoucherStatus      VoucherStatus
	VoucherType        VoucherType
	VoucherNoteMatches bool

	OrderDocNo int64
}

// DueAmount is what the customer still owes. Nothing is due once invoiced.
func (r JoinedOrderRecord) DueAmount() decimal.Decimal {
	if r.InvoiceMatched {
		return decimal.Zero
	}
	return r.Price.Sub(r.TotalDeposit)
}

// DepositPaid is the deposit taken, or the full sale price once invoiced.
func (r JoinedOrderRecord) DepositPaid() decimal.Decimal {
	if r.InvoiceMatched {
		return r.Price
	}
	return r.TotalDeposit
}

// EnrichedRecord is a record with its final status. Status equals Preliminary
// unless the record was enriched from the legacy system.
type EnrichedRecord struct {
	JoinedOrderRecord
	Preliminary Status
	Status      string
	Enriched    bool
}

// TextOrSentinel applies the absent-text contract to a nullable column.
func TextOrSentinel(value *string) string {
	if value == nil || *value == "" {
		return TextSentinel
	}
	return *value
}

// DecimalOrZero applies the absent-number contract to a nullable column.
func DecimalOrZero(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}

// Package classifier maps a joined order record to its preliminary status.
//
// Rules are evaluated in table order and the first matching predicate wins.
// The order is business precedence: an invoice outranks any voucher, and the
// cancel flag only decides the outcome after the delivery branches are exhausted.
package classifier

import "order-status/internal/orderstatus/data"

type Predicate func(r data.JoinedOrderRecord) bool

type Rule struct {
	Name      string
	Predicate Predicate
	Status    data.Status
}

var rules = []Rule{
	{
		Name:      "invoiced",
		Predicate: func(r data.JoinedOrderRecord) bool { return r.InvoiceMatched && !r.Cancelled },
		Status:    data.DeliveredStatus,
	},
	{
		Name:      "invoiced-cancelled",
		Predicate: func(r data.JoinedOrderRecord) bool { return r.InvoiceMatched && r.Cancelled },
		Status:    data.DeliveredSOCancelledStatus,
	},
	{
		Name:      "dependent-document",
		Predicate: func(r data.JoinedOrderRecord) bool { return r.HasDependentDocument && !r.Cancelled },
		Status:    data.DeliveredStatus,
	},
	{
		Name:      "dependent-document-cancelled",
		Predicate: func(r data.JoinedOrderRecord) bool { return r.HasDependentDocument && r.Cancelled },
		Status:    data.DeliveredSOCancelledStatus,
	},
	{
		Name:      "cancelled",
		Predicate: func(r data.JoinedOrderRecord) bool { return r.Cancelled },
		Status:    data.CancelledOrderStatus,
	},
	{
		Name:      "pending-receiving",
		Predicate: voucher(data.VoucherStatusInTransit, data.VoucherTypeInbound, false),
		Status:    data.PendingForReceivingStatus,
	},
	{
		Name:      "returned",
		Predicate: voucher(data.VoucherStatusClosed, data.VoucherTypeOutbound, false),
		Status:    data.ReturnToVendorStatus,
	},
	{
		Name:      "returned-cancelled",
		Predicate: voucher(data.VoucherStatusClosed, data.VoucherTypeOutbound, true),
		Status:    data.ReturnToVendorCancelledStatus,
	},
	{
		Name:      "received",
		Predicate: voucher(data.VoucherStatusClosed, data.VoucherTypeInbound, false),
		Status:    data.PendingForDeliveryStatus,
	},
	{
		Name:      "received-cancelled",
		Predicate: voucher(data.VoucherStatusClosed, data.VoucherTypeInbound, true),
		Status:    data.AfterReceivedCancelledOrderStatus,
	},
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	res := make([]Rule, len(rules))
	copy(res, rules)
	return res
}

// Fallback is returned when no rule matches. It marks a record for enrichment.
const Fallback = data.WorkOrderRaisedStatus

func Classify(r data.JoinedOrderRecord) data.Status {
	status, _ := Explain(r)
	return status
}

// Explain is Classify that also names the winning rule, or "fallback".
func Explain(r data.JoinedOrderRecord) (data.Status, string) {
	for _, rule := range rules {
		if rule.Predicate(r) {
			return rule.Status, rule.Name
		}
	}
	return Fallback, "fallback"
}

// Statuses lists every label Classify can return.
func Statuses() []data.Status {
	seen := make(map[data.Status]struct{}, len(rules)+1)
	res := make([]data.Status, 0, len(rules)+1)
	for _, rule := range rules {
		if _, ok := seen[rule.Status]; ok {
			continue
		}
		seen[rule.Status] = struct{}{}
		res = append(res, rule.Status)
	}
	return append(res, Fallback)
}

func voucher(status data.VoucherStatus, vouType data.VoucherType, cancelled bool) Predicate {
	return func(r data.JoinedOrderRecord) bool {
		return r.VoucherStatus == status &&
			r.VoucherType == vouType &&
			r.VoucherNoteMatches &&
			r.Cancelled == cancelled
	}
}

package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"order-status/internal/orderstatus/data"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		record   data.JoinedOrderRecord
		expected data.Status
	}{
		{
			name:     "invoiced",
			record:   data.JoinedOrderRecord{InvoiceMatched: true},
			expected: data.DeliveredStatus,
		},
		{
			name:     "invoiced and cancelled",
			record:   data.JoinedOrderRecord{InvoiceMatched: true, Cancelled: true},
			expected: data.DeliveredSOCancelledStatus,
		},
		{
			name:     "dependent document",
			record:   data.JoinedOrderRecord{HasDependentDocument: true},
			expected: data.DeliveredStatus,
		},
		{
			name:     "dependent document and cancelled",
			record:   data.JoinedOrderRecord{HasDependentDocument: true, Cancelled: true},
			expected: data.DeliveredSOCancelledStatus,
		},
		{
			name:     "cancelled",
			record:   data.JoinedOrderRecord{Cancelled: true},
			expected: data.CancelledOrderStatus,
		},
		{
			name: "in transit inbound voucher",
			record: data.JoinedOrderRecord{
				VoucherStatus:      data.VoucherStatusInTransit,
				VoucherType:        data.VoucherTypeInbound,
				VoucherNoteMatches: true,
			},
			expected: data.PendingForReceivingStatus,
		},
		{
			name: "closed outbound voucher",
			record: data.JoinedOrderRecord{
				VoucherStatus:      data.VoucherStatusClosed,
				VoucherType:        data.VoucherTypeOutbound,
				VoucherNoteMatches: true,
			},
			expected: data.ReturnToVendorStatus,
		},
		{
			name: "closed inbound voucher",
			record: data.JoinedOrderRecord{
				VoucherStatus:      data.VoucherStatusClosed,
				VoucherType:        data.VoucherTypeInbound,
				VoucherNoteMatches: true,
			},
			expected: data.PendingForDeliveryStatus,
		},
		{
			name: "voucher note for another package",
			record: data.JoinedOrderRecord{
				VoucherStatus: data.VoucherStatusClosed,
				VoucherType:   data.VoucherTypeInbound,
			},
			expected: data.WorkOrderRaisedStatus,
		},
		{
			name:     "nothing known",
			record:   data.JoinedOrderRecord{PackageNo: "P-1"},
			expected: data.WorkOrderRaisedStatus,
		},
		{
			name: "invoice outranks pending receiving",
			record: data.JoinedOrderRecord{
				InvoiceMatched:     true,
				VoucherStatus:      data.VoucherStatusInTransit,
				VoucherType:        data.VoucherTypeInbound,
				VoucherNoteMatches: true,
			},
			expected: data.DeliveredStatus,
		},
		{
			// the cancelled rule precedes every cancelled voucher rule
			name: "cancelled closed outbound voucher",
			record: data.JoinedOrderRecord{
				Cancelled:          true,
				VoucherStatus:      data.VoucherStatusClosed,
				VoucherType:        data.VoucherTypeOutbound,
				VoucherNoteMatches: true,
			},
			expected: data.CancelledOrderStatus,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Classify(test.record))
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	table := Rules()
	legal := make(map[data.Status]bool)
	for _, status := range Statuses() {
		legal[status] = true
	}

	for _, record := range allRecords() {
		got, ruleName := Explain(record)
		require.True(t, legal[got], "illegal status %q", got)

		firstMatch := -1
		for i, rule := range table {
			if rule.Predicate(record) {
				firstMatch = i
				break
			}
		}
		if firstMatch == -1 {
			assert.Equal(t, Fallback, got)
			assert.Equal(t, "fallback", ruleName)
			continue
		}
		assert.Equal(t, table[firstMatch].Status, got, "record %+v", record)
		assert.Equal(t, table[firstMatch].Name, ruleName)
	}
}

func TestClassifyMatchesPlainChain(t *testing.T) {
	for _, record := range allRecords() {
		assert.Equal(t, plainChain(record), Classify(record), "record %+v", record)
	}
}

// plainChain restates the precedence as a single if/else chain.
func plainChain(r data.JoinedOrderRecord) data.Status {
	closedVoucher := r.VoucherStatus == data.VoucherStatusClosed && r.VoucherNoteMatches
	if r.InvoiceMatched && !r.Cancelled {
		return data.DeliveredStatus
	} else if r.InvoiceMatched {
		return data.DeliveredSOCancelledStatus
	} else if r.HasDependentDocument && !r.Cancelled {
		return data.DeliveredStatus
	} else if r.HasDependentDocument {
		return data.DeliveredSOCancelledStatus
	} else if r.Cancelled {
		return data.CancelledOrderStatus
	} else if r.VoucherStatus == data.VoucherStatusInTransit &&
		r.VoucherType == data.VoucherTypeInbound && r.VoucherNoteMatches {
		return data.PendingForReceivingStatus
	} else if closedVoucher && r.VoucherType == data.VoucherTypeOutbound {
		return data.ReturnToVendorStatus
	} else if closedVoucher && r.VoucherType == data.VoucherTypeInbound {
		return data.PendingForDeliveryStatus
	}
	return data.WorkOrderRaisedStatus
}

func TestRuleOrder(t *testing.T) {
	names := make([]string, 0, len(rules))
	for _, rule := range Rules() {
		names = append(names, rule.Name)
	}
	assert.Equal(t, []string{
		"invoiced",
		"invoiced-cancelled",
		"dependent-document",
		"dependent-document-cancelled",
		"cancelled",
		"pending-receiving",
		"returned",
		"returned-cancelled",
		"received",
		"received-cancelled",
	}, names)
}

func TestRulesReturnsCopy(t *testing.T) {
	table := Rules()
	table[0].Status = data.CancelledOrderStatus
	assert.Equal(t, data.DeliveredStatus, Classify(data.JoinedOrderRecord{InvoiceMatched: true}))
}

func TestStatuses(t *testing.T) {
	assert.ElementsMatch(t, []data.Status{
		data.DeliveredStatus,
		data.DeliveredSOCancelledStatus,
		data.CancelledOrderStatus,
		data.PendingForReceivingStatus,
		data.ReturnToVendorStatus,
		data.ReturnToVendorCancelledStatus,
		data.PendingForDeliveryStatus,
		data.AfterReceivedCancelledOrderStatus,
		data.WorkOrderRaisedStatus,
	}, Statuses())
}

// allRecords enumerates every combination of the fields the rules read.
func allRecords() []data.JoinedOrderRecord {
	bools := []bool{false, true}
	voucherStatuses := []data.VoucherStatus{0, data.VoucherStatusInTransit, data.VoucherStatusClosed}
	voucherTypes := []data.VoucherType{data.VoucherTypeInbound, data.VoucherTypeOutbound, 7}

	var res []data.JoinedOrderRecord
	for _, invoiced := range bools {
		for _, cancelled := range bools {
			for _, dependent := range bools {
				for _, noteMatches := range bools {
					for _, vs := range voucherStatuses {
						for _, vt := range voucherTypes {
							res = append(res, data.JoinedOrderRecord{
								PackageNo:            "P-1",
								InvoiceMatched:       invoiced,
								Cancelled:            cancelled,
								HasDependentDocument: dependent,
								VoucherNoteMatches:   noteMatches,
								VoucherStatus:        vs,
								VoucherType:          vt,
							})
						}
					}
				}
			}
		}
	}
	return res
}

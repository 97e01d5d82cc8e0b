package service

import (
	"context"

	"order-status/internal/orderstatus/data"
)

type Supplier interface {
	GetJoinedOrders(ctx context.Context, filter data.Filter) ([]data.JoinedOrderRecord, error)
}

type Gateway interface {
	Lookup(ctx context.Context, key string) (string, error)
}

// Sink materializes an export and returns a reference to the written artifact.
type Sink interface {
	Write(ctx context.Context, records []data.EnrichedRecord) (string, error)
}

type Observer interface {
	ObserveClassified(status string)
	ObserveEnrichmentFailure()
	ObserveExport()
	ObserveSupplierRows(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveClassified(string)  {}
func (nopObserver) ObserveEnrichmentFailure() {}
func (nopObserver) ObserveExport()            {}
func (nopObserver) ObserveSupplierRows(int)   {}

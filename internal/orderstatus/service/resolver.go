package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"order-status/internal/orderstatus/classifier"
	"order-status/internal/orderstatus/data"
	"order-status/internal/orderstatus/textnorm"
	"order-status/pkg/logging"
)

type Config struct {
	// EnrichWorkers bounds concurrent legacy lookups during enrichment.
	EnrichWorkers int
}

type Resolver struct {
	supplier Supplier
	gateway  Gateway
	sink     Sink
	observer Observer
	config   Config
	logger   *logging.ZapLogger
}

func NewResolver(
	config Config,
	supplier Supplier,
	gateway Gateway,
	sink Sink,
	observer Observer,
	logger *logging.ZapLogger,
) *Resolver {
	if config.EnrichWorkers < 1 {
		config.EnrichWorkers = 1
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Resolver{
		supplier: supplier,
		gateway:  gateway,
		sink:     sink,
		observer: observer,
		config:   config,
		logger:   logger,
	}
}

// ResolveKeys looks every key up in order. The first failure aborts the batch
// and no partial results are returned.
func (r *Resolver) ResolveKeys(ctx context.Context, keys []string) ([]string, error) {
	res := make([]string, 0, len(keys))
	for _, key := range keys {
		status, err := r.gateway.Lookup(ctx, key)
		if err != nil {
			return nil, &LookupError{Key: key, Stage: StageResolve, Err: err}
		}
		res = append(res, status)
	}
	return res, nil
}

// ListOrders classifies the matching records. With enrich set, work-order
// records are looked up in the legacy system and a failed lookup keeps the
// preliminary status.
func (r *Resolver) ListOrders(ctx context.Context, filter data.Filter, enrich bool) ([]data.EnrichedRecord, error) {
	records, err := r.classified(ctx, filter)
	if err != nil {
		return nil, err
	}
	if enrich {
		if err = r.enrich(ctx, records, false); err != nil {
			return nil, fmt.Errorf("error enriching orders: %w", err)
		}
	}
	return finish(records, filter), nil
}

// ExportOrders enriches every work-order record and writes the result through
// the sink. Any failed lookup aborts the export before anything is written.
func (r *Resolver) ExportOrders(ctx context.Context, filter data.Filter) (string, error) {
	records, err := r.classified(ctx, filter)
	if err != nil {
		return "", err
	}
	if err = r.enrich(ctx, records, true); err != nil {
		return "", fmt.Errorf("error enriching orders: %w", err)
	}
	records = finish(records, filter)
	ref, err := r.sink.Write(ctx, records)
	if err != nil {
		return "", fmt.Errorf("error writing export: %w", err)
	}
	r.observer.ObserveExport()
	r.logger.InfoCtx(ctx, "orders exported", zap.Int("rows", len(records)), zap.String("artifact", ref))
	return ref, nil
}

func (r *Resolver) classified(ctx context.Context, filter data.Filter) ([]data.EnrichedRecord, error) {
	joined, err := r.supplier.GetJoinedOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error getting joined orders: %w", err)
	}
	r.observer.ObserveSupplierRows(len(joined))
	res := make([]data.EnrichedRecord, len(joined))
	for i, record := range joined {
		status := classifier.Classify(record)
		r.observer.ObserveClassified(string(status))
		res[i] = data.EnrichedRecord{
			JoinedOrderRecord: record,
			Preliminary:       status,
			Status:            string(status),
		}
	}
	return res, nil
}

// enrich replaces the status of work-order records in place. Each lookup writes
// only its own slot, so record order never changes.
func (r *Resolver) enrich(ctx context.Context, records []data.EnrichedRecord, failFast bool) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.EnrichWorkers)

	for i := range records {
		if records[i].Preliminary != data.WorkOrderRaisedStatus {
			continue
		}
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			key := records[i].PackageNo
			status, err := r.gateway.Lookup(gctx, key)
			if err != nil {
				lookupErr := &LookupError{Key: key, Stage: StageEnrich, Err: err}
				if failFast {
					return lookupErr
				}
				r.observer.ObserveEnrichmentFailure()
				r.logger.WarnCtx(
					logging.WithContextFields(ctx, zap.String("packageNo", key)),
					"keeping preliminary status",
					zap.Error(lookupErr),
				)
				return nil
			}
			records[i].Status = status
			records[i].Enriched = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if failFast {
		return ctx.Err()
	}
	return nil
}

// finish normalizes text fields and applies the status predicate.
func finish(records []data.EnrichedRecord, filter data.Filter) []data.EnrichedRecord {
	res := make([]data.EnrichedRecord, 0, len(records))
	for _, record := range records {
		record.PackageNo = textnorm.Normalize(record.PackageNo)
		record.ItemCode = textnorm.Normalize(record.ItemCode)
		record.ShipDate = textnorm.Normalize(record.ShipDate)
		record.CustomerPhone = textnorm.Normalize(record.CustomerPhone)
		record.CustomerName = textnorm.Normalize(record.CustomerName)
		record.EmployeeLogin = textnorm.Normalize(record.EmployeeLogin)
		record.Status = textnorm.Normalize(record.Status)
		if !filter.MatchesStatus(record.Status) {
			continue
		}
		res = append(res, record)
	}
	return res
}

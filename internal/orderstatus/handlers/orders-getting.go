package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"order-status/internal/common/clientprotocol"
	"order-status/internal/orderstatus/data"
	"order-status/pkg/logging"
)

type OrdersGettingHandler struct {
	service OrdersListingService
	logger  *logging.ZapLogger
}

type OrdersListingService interface {
	ListOrders(ctx context.Context, filter data.Filter, enrich bool) ([]data.EnrichedRecord, error)
}

func NewOrdersGettingHandler(service OrdersListingService, logger *logging.ZapLogger) *OrdersGettingHandler {
	return &OrdersGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrdersGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	request, err := decodeJSON[clientprotocol.OrdersRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	filter, err := toFilter(request)
	if err != nil {
		writeError(r.Context(), w, err, h.logger)
		return
	}

	records, err := h.service.ListOrders(r.Context(), filter, request.Enrich)
	if err != nil {
		writeError(r.Context(), w, err, h.logger)
		return
	}

	res := make([]clientprotocol.Order, len(records))
	for i, record := range records {
		res[i] = convert(record)
	}
	if err = tryWriteResponseJSON(w, http.StatusOK, res); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
	}
}

func convert(r data.EnrichedRecord) clientprotocol.Order {
	return clientprotocol.Order{
		PackageNo:       r.PackageNo,
		ItemCode:        r.ItemCode,
		CreatedDate:     r.CreatedDate.Format(data.DateLayout),
		ShipDate:        r.ShipDate,
		CustomerPhone:   r.CustomerPhone,
		CustomerName:    r.CustomerName,
		EmployeeLogin:   r.EmployeeLogin,
		Quantity:        r.Quantity.InexactFloat64(),
		OriginalPrice:   r.OriginalPrice.InexactFloat64(),
		Price:           r.Price.InexactFloat64(),
		Discount:        r.Discount.InexactFloat64(),
		InvoicePrice:    r.InvoicePrice.InexactFloat64(),
		InvoiceDiscount: r.InvoiceDiscount.InexactFloat64(),
		Status:          r.Status,
		DueAmount:       r.DueAmount().InexactFloat64(),
		DepositPaid:     r.DepositPaid().InexactFloat64(),
		GiftCardAmount:  r.GiftCardAmount.InexactFloat64(),
		OrderDocNo:      r.OrderDocNo,
	}
}

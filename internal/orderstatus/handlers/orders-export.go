package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"order-status/internal/common/clientprotocol"
	"order-status/internal/orderstatus/data"
	"order-status/internal/orderstatus/export"
	"order-status/pkg/logging"
)

type OrdersExportHandler struct {
	service OrdersExportService
	logger  *logging.ZapLogger
}

type OrdersExportService interface {
	ExportOrders(ctx context.Context, filter data.Filter) (string, error)
}

func NewOrdersExportHandler(service OrdersExportService, logger *logging.ZapLogger) *OrdersExportHandler {
	return &OrdersExportHandler{
		service: service,
		logger:  logger,
	}
}

// ServeHTTP streams the workbook and removes it afterwards.
func (h *OrdersExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	path, err := h.service.ExportOrders(r.Context(), filter)
	if err != nil {
		writeError(r.Context(), w, err, h.logger)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			h.logger.WarnCtx(r.Context(), "failed to remove export", zap.String("path", path), zap.Error(err))
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		writeError(r.Context(), w, fmt.Errorf("%w: %w", export.ErrArtifactWrite, err), h.logger)
		return
	}
	defer file.Close()
	stat, err := file.Stat()
	if err != nil {
		writeError(r.Context(), w, fmt.Errorf("%w: %w", export.ErrArtifactWrite, err), h.logger)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DownloadName))
	http.ServeContent(w, r, export.DownloadName, stat.ModTime(), file)
}

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"order-status/internal/common/clientprotocol"
	"order-status/pkg/logging"
)

type JobOrderStatusHandler struct {
	service KeyResolvingService
	logger  *logging.ZapLogger
}

type KeyResolvingService interface {
	ResolveKeys(ctx context.Context, keys []string) ([]string, error)
}

func NewJobOrderStatusHandler(service KeyResolvingService, logger *logging.ZapLogger) *JobOrderStatusHandler {
	return &JobOrderStatusHandler{
		service: service,
		logger:  logger,
	}
}

// ServeHTTP answers lookup failures with result=false rather than an error code,
// which is the contract existing clients of this endpoint rely on.
func (h *JobOrderStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	request, err := decodeJSON[clientprotocol.StatusRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	response := clientprotocol.StatusResponse{Result: true}
	statuses, err := h.service.ResolveKeys(r.Context(), request.PackageNumbers)
	if err != nil {
		h.logger.WarnCtx(r.Context(), "status lookup failed", zap.Error(err))
		response = clientprotocol.StatusResponse{Msg: fmt.Sprintf("Error fetching status: %s", err)}
	} else {
		response.Msg = strings.Join(statuses, ", ")
	}

	if err = tryWriteResponseJSON(w, http.StatusOK, response); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
	}
}

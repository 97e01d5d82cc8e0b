package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
	"order-status/internal/common/clientprotocol"
	"order-status/internal/orderstatus/data"
	"order-status/internal/orderstatus/legacygateway"
	"order-status/pkg/logging"
)

func closeBody(ctx context.Context, body io.ReadCloser, logger *logging.ZapLogger) {
	err := body.Close()
	if err != nil {
		logger.ErrorCtx(ctx, "failed to close body", zap.Error(err))
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	decoder := json.NewDecoder(r)
	err := decoder.Decode(&out)
	if errors.Is(err, io.EOF) {
		return out, nil
	}
	return out, err
}

func tryWriteResponseJSON(w http.ResponseWriter, status int, responseItem any) error {
	res, err := json.Marshal(responseItem)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(res)
	if err != nil {
		return err
	}
	return nil
}

// statusCode maps a failed request to an HTTP code.
func statusCode(err error) int {
	var gatewayErr *legacygateway.GatewayError
	switch {
	case errors.Is(err, data.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, data.ErrSupplierUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, legacygateway.ErrGatewayUnavailable),
		errors.Is(err, legacygateway.ErrMalformedResponse),
		errors.As(err, &gatewayErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error, logger *logging.ZapLogger) {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		logger.ErrorCtx(ctx, "request failed", zap.Error(err), zap.Int("code", code))
	} else {
		logger.DebugCtx(ctx, "request rejected", zap.Error(err), zap.Int("code", code))
	}
	if err = tryWriteResponseJSON(w, code, clientprotocol.ErrorResponse{Detail: err.Error()}); err != nil {
		logger.ErrorCtx(ctx, "error writing response", zap.Error(err))
	}
}

func toFilter(request clientprotocol.OrdersRequest) (data.Filter, error) {
	return data.ParseFilter(data.FilterInput{
		PackageNo:     request.PackageNo,
		Branch:        request.Branch,
		CustomerPhone: request.CustomerPhone,
		EmployeeLogin: request.EmployeeLogin,
		ItemCode:      request.ItemCode,
		DateFrom:      request.DateFrom,
		DateTo:        request.DateTo,
		Status:        request.Status,
	})
}

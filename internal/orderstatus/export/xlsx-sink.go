package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"order-status/internal/orderstatus/data"
	"order-status/internal/orderstatus/textnorm"
	"order-status/pkg/logging"
)

const (
	SheetName    = "Job Orders"
	DownloadName = "job_order_export.xlsx"
	ContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ErrArtifactWrite = errors.New("export artifact could not be written")

// Columns is the fixed header row. Every data row follows the same order.
var Columns = []string{
	"PACKAGE_NO",
	"ALU",
	"CREATED_DATE",
	"SHIP_DATE",
	"BT_PRIMARY_PHONE_NO",
	"BT_FIRST_NAME",
	"EMPLOYEE1_LOGIN_NAME",
	"QTY",
	"ORIG_PRICE",
	"PRICE",
	"DISC_AMT",
	"INVOICE_PRICE",
	"INVOICE_DISC",
	"ORDER_STATUS",
	"DUE",
	"SO_DEPOSIT_AMT_PAID",
	"CGC",
	"ORDER_DOC_NO",
}

// XLSXSink writes each export to a new workbook under dir.
type XLSXSink struct {
	dir    string
	logger *logging.ZapLogger
}

func NewXLSXSink(dir string, logger *logging.ZapLogger) *XLSXSink {
	if dir == "" {
		dir = os.TempDir()
	}
	return &XLSXSink{
		dir:    dir,
		logger: logger,
	}
}

// Write returns the path of the written workbook. The caller owns the file.
func (s *XLSXSink) Write(ctx context.Context, records []data.EnrichedRecord) (string, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WarnCtx(ctx, "failed to close workbook", zap.Error(err))
		}
	}()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrArtifactWrite, err)
		}
		values := row(record)
		if err = f.SetSheetRow(SheetName, cell, &values); err != nil {
			return "", fmt.Errorf("%w: %w", ErrArtifactWrite, err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "G", 20); err != nil {
		s.logger.DebugCtx(ctx, "failed to set column width", zap.Error(err))
	}
	if err := f.SetColWidth(SheetName, "N", "N", 40); err != nil {
		s.logger.DebugCtx(ctx, "failed to set column width", zap.Error(err))
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}
	path := filepath.Join(s.dir, uuid.NewString()+".xlsx")
	if err := f.SaveAs(path); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}

	s.logger.DebugCtx(ctx, "workbook written",
		zap.String("path", path),
		zap.Int("rows", len(records)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return path, nil
}

func row(r data.EnrichedRecord) []any {
	return []any{
		textnorm.Value(r.PackageNo),
		textnorm.Value(r.ItemCode),
		r.CreatedDate.Format(data.DateLayout),
		textnorm.Value(r.ShipDate),
		textnorm.Value(r.CustomerPhone),
		textnorm.Value(r.CustomerName),
		textnorm.Value(r.EmployeeLogin),
		r.Quantity.InexactFloat64(),
		r.OriginalPrice.InexactFloat64(),
		r.Price.InexactFloat64(),
		r.Discount.InexactFloat64(),
		r.InvoicePrice.InexactFloat64(),
		r.InvoiceDiscount.InexactFloat64(),
		textnorm.Value(r.Status),
		r.DueAmount().InexactFloat64(),
		r.DepositPaid().InexactFloat64(),
		r.GiftCardAmount.InexactFloat64(),
		r.OrderDocNo,
	}
}

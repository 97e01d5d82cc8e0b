package dbrepository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"order-status/internal/orderstatus/data"
	"order-status/pkg/logging"
)

const (
	DefaultGiftCardTender = "Central GiftCard"
	orderByClause         = " ORDER BY dso1.created_datetime, dso.package_no, dso.sid"
)

// DefaultExcludedStores are stores whose orders are not fulfilled through the legacy system.
var DefaultExcludedStores = []int32{48, 65}

type DBStorage interface {
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

type Config struct {
	GiftCardTender string
	ExcludedStores []int32
}

// DBRepository is the record join supplier: one JoinedOrderRecord per sales order line.
type DBRepository struct {
	storage DBStorage
	cfg     Config
	logger  *logging.ZapLogger
}

func New(storage DBStorage, cfg Config, logger *logging.ZapLogger) *DBRepository {
	if cfg.GiftCardTender == "" {
		cfg.GiftCardTender = DefaultGiftCardTender
	}
	if cfg.ExcludedStores == nil {
		cfg.ExcludedStores = DefaultExcludedStores
	}
	return &DBRepository{
		storage: storage,
		cfg:     cfg,
		logger:  logger,
	}
}

//go:embed sql/select_joined_orders.sql
var selectJoinedOrdersQuery string

func (db *DBRepository) GetJoinedOrders(ctx context.Context, filter data.Filter) ([]data.JoinedOrderRecord, error) {
	query, args := buildJoinedOrdersQuery(filter, db.cfg.GiftCardTender, db.cfg.ExcludedStores)
	rows, err := db.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.JoinedOrderRecord, 0)
	for rows.Next() {
		record, err := scanJoinedOrder(rows)
		if err != nil {
			return nil, handleSQLError(err)
		}
		if record.PackageNo == data.TextSentinel {
			db.logger.WarnCtx(ctx, "skipping order line without package number",
				zap.Int64("orderDocNo", record.OrderDocNo),
			)
			continue
		}
		result = append(result, record)
	}
	if err = rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	db.logger.DebugCtx(ctx, "joined orders fetched", zap.Int("rows", len(result)))
	return result, nil
}

func scanJoinedOrder(rows pgx.Rows) (data.JoinedOrderRecord, error) {
	var (
		packageNo, itemCode, shipDate  *string
		phone, name, employeeLogin     *string
		createdDate                    *time.Time
		qty, origPrice, price, disc    *decimal.Decimal
		invoicePrice, invoiceDisc      *decimal.Decimal
		deposit, giftCard              *decimal.Decimal
		cancelFlag, vouStatus, vouType *int32
		docNo                          *int64
		record                         data.JoinedOrderRecord
	)
	err := rows.Scan(
		&packageNo,
		&itemCode,
		&createdDate,
		&shipDate,
		&phone,
		&name,
		&employeeLogin,
		&qty,
		&origPrice,
		&price,
		&disc,
		&invoicePrice,
		&invoiceDisc,
		&record.InvoiceMatched,
		&cancelFlag,
		&record.HasDependentDocument,
		&vouStatus,
		&vouType,
		&record.VoucherNoteMatches,
		&deposit,
		&giftCard,
		&docNo,
	)
	if err != nil {
		return data.JoinedOrderRecord{}, err
	}
	record.PackageNo = data.TextOrSentinel(packageNo)
	record.ItemCode = data.TextOrSentinel(itemCode)
	if createdDate != nil {
		record.CreatedDate = *createdDate
	}
	record.ShipDate = data.TextOrSentinel(shipDate)
	record.CustomerPhone = data.TextOrSentinel(phone)
	record.CustomerName = data.TextOrSentinel(name)
	record.EmployeeLogin = data.TextOrSentinel(employeeLogin)
	record.Quantity = data.DecimalOrZero(qty)
	record.OriginalPrice = data.DecimalOrZero(origPrice)
	record.Price = data.DecimalOrZero(price)
	record.Discount = data.DecimalOrZero(disc)
	record.InvoicePrice = data.DecimalOrZero(invoicePrice)
	record.InvoiceDiscount = data.DecimalOrZero(invoiceDisc)
	record.TotalDeposit = data.DecimalOrZero(deposit)
	record.GiftCardAmount = data.DecimalOrZero(giftCard)
	record.Cancelled = intOrZero(cancelFlag) == 1
	record.VoucherStatus = data.VoucherStatus(intOrZero(vouStatus))
	record.VoucherType = data.VoucherType(intOrZero(vouType))
	if docNo != nil {
		record.OrderDocNo = *docNo
	}
	return record, nil
}

func intOrZero(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}

// buildJoinedOrdersQuery appends one parameterized predicate per non-empty filter field.
func buildJoinedOrdersQuery(filter data.Filter, giftCardTender string, excludedStores []int32) (string, []any) {
	args := []any{giftCardTender, excludedStores}
	var sb strings.Builder
	sb.WriteString(selectJoinedOrdersQuery)

	addPredicate := func(expr string, value any) {
		args = append(args, value)
		fmt.Fprintf(&sb, " AND %s $%d", expr, len(args))
	}
	if filter.PackageNo != "" {
		addPredicate("dso.package_no =", filter.PackageNo)
	}
	if filter.Branch != "" {
		addPredicate("dso1.store_name =", filter.Branch)
	}
	if filter.CustomerPhone != "" {
		addPredicate("dso1.bt_primary_phone_no =", filter.CustomerPhone)
	}
	if filter.EmployeeLogin != "" {
		addPredicate("dso.employee1_login_name =", filter.EmployeeLogin)
	}
	if filter.ItemCode != "" {
		addPredicate("dso.alu =", filter.ItemCode)
	}
	if filter.DateFrom != nil {
		addPredicate("dso1.created_datetime::date >=", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addPredicate("dso1.created_datetime::date <=", *filter.DateTo)
	}
	sb.WriteString(orderByClause)
	return sb.String(), args
}

func handleSQLError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: query failed with code %s: %s", data.ErrSupplierUnavailable, pgErr.Code, pgErr.Message)
	}
	return fmt.Errorf("%w: %w", data.ErrSupplierUnavailable, err)
}

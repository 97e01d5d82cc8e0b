package dbrepository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"order-status/internal/orderstatus/classifier"
	"order-status/internal/orderstatus/data"
	"order-status/internal/orderstatus/data/database"
	"order-status/internal/orderstatus/data/dbrepository"
	"order-status/pkg/logging"
	"order-status/pkg/pgxstorage"
)

type SupplierIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	storage    *pgxstorage.DBStorage
	repository *dbrepository.DBRepository
}

func TestSupplierIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SupplierIntegrationTestSuite))
}

func (s *SupplierIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	factory := database.NewPgxDatabaseFactory(database.Config{
		ConnectionString: connStr,
		ApplyMigrations:  true,
	})
	storage, err := pgxstorage.New(ctx, factory, pgxstorage.Config{
		RetryAttemptDelays: []time.Duration{time.Second, time.Second, time.Second},
	})
	s.Require().NoError(err)
	s.storage = storage
	s.repository = dbrepository.New(storage, dbrepository.Config{}, logging.NewNop())
}

func (s *SupplierIntegrationTestSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *SupplierIntegrationTestSuite) SetupTest() {
	_, err := s.storage.Exec(context.Background(),
		"TRUNCATE rps.document, rps.document_item, rps.voucher, rps.vou_item, rps.tender")
	s.Require().NoError(err)
	s.seed()
}

func (s *SupplierIntegrationTestSuite) exec(query string, args ...any) {
	_, err := s.storage.Exec(context.Background(), query, args...)
	s.Require().NoError(err)
}

// seed creates four sales orders:
//
//	1 (P-100, 2024-03-05): invoiced, gift card tender
//	2 (P-200, 2024-03-10): closed inbound voucher for the package
//	3 (P-300, 2024-04-01): no downstream documents, cancelled flag unset
//	4 (P-400, 2024-03-12): store 48, excluded
func (s *SupplierIntegrationTestSuite) seed() {
	const insertDoc = `INSERT INTO rps.document
		(sid, receipt_type, status, order_doc_no, store_no, store_name, created_datetime,
		 udf4_string, bt_primary_phone_no, bt_first_name, so_cancel_flag, total_deposit_taken)
		VALUES ($1, 2, 4, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	const insertItem = `INSERT INTO rps.document_item
		(sid, doc_sid, invn_sbs_item_sid, package_no, alu, employee1_login_name, qty, orig_price, price, disc_amt, udf5_string)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	s.exec(insertDoc, 1, 5001, 10, "Mall", time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC),
		"2024-03-20", "0501111111", "Amal", 0, 100)
	s.exec(insertItem, 11, 1, 900, "P-100", "ALU-1", "jdoe", 2, 60, 50, 10, nil)
	// invoice line referencing order document 1
	s.exec(`INSERT INTO rps.document (sid, receipt_type, status, order_doc_no, store_no, ref_order_sid)
		VALUES (90, 0, 4, NULL, 10, NULL)`)
	s.exec(insertItem, 91, 90, 900, "P-100", "ALU-1", "jdoe", 2, 60, 50, 5, "1")
	s.exec(`INSERT INTO rps.tender (sid, doc_sid, tender_name, amount) VALUES (1, 1, 'Central GiftCard', 25)`)
	s.exec(`INSERT INTO rps.tender (sid, doc_sid, tender_name, amount) VALUES (2, 1, 'Cash', 75)`)

	s.exec(insertDoc, 2, 5002, 10, "Mall", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
		nil, "0502222222", "Badr", 0, 30)
	s.exec(insertItem, 21, 2, 901, "P-200", "ALU-2", "jdoe", 1, 80, 80, 0, nil)
	s.exec(`INSERT INTO rps.voucher (sid, status, vou_type) VALUES (1, 3, 0), (2, 4, 0)`)
	s.exec(`INSERT INTO rps.vou_item (sid, vou_sid, item_sid, item_note1, created_datetime) VALUES
		(1, 1, 901, 'P-200', '2024-03-11 10:00'),
		(2, 2, 901, 'P-200', '2024-03-15 10:00')`)

	s.exec(insertDoc, 3, 5003, 11, "Airport", time.Date(2024, 4, 1, 23, 30, 0, 0, time.UTC),
		nil, nil, nil, nil, nil)
	s.exec(insertItem, 31, 3, 902, "P-300", "ALU-3", "asmith", 1, nil, 40, nil, nil)

	s.exec(insertDoc, 4, 5004, 48, "Outlet", time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC),
		nil, "0504444444", "Dana", 0, 0)
	s.exec(insertItem, 41, 4, 903, "P-400", "ALU-4", "jdoe", 1, 10, 10, 0, nil)
}

func (s *SupplierIntegrationTestSuite) packages(records []data.JoinedOrderRecord) []string {
	res := make([]string, 0, len(records))
	for _, r := range records {
		res = append(res, r.PackageNo)
	}
	return res
}

func (s *SupplierIntegrationTestSuite) TestAllOrders() {
	records, err := s.repository.GetJoinedOrders(context.Background(), data.Filter{})
	s.Require().NoError(err)
	s.Equal([]string{"P-100", "P-200", "P-300"}, s.packages(records))

	invoiced := records[0]
	s.True(invoiced.InvoiceMatched)
	s.Equal(data.DeliveredStatus, classifier.Classify(invoiced))
	s.Equal("100", invoiced.Price.String())
	s.Equal("25", invoiced.GiftCardAmount.String())
	s.Equal("2024-03-20", invoiced.ShipDate)
	s.Equal(int64(5001), invoiced.OrderDocNo)
	s.True(invoiced.DueAmount().IsZero())

	received := records[1]
	s.False(received.InvoiceMatched)
	s.Equal(data.VoucherStatusClosed, received.VoucherStatus)
	s.Equal(data.VoucherTypeInbound, received.VoucherType)
	s.True(received.VoucherNoteMatches)
	s.Equal(data.PendingForDeliveryStatus, classifier.Classify(received))
	s.Equal(data.TextSentinel, received.ShipDate)
	s.Equal("50", received.DueAmount().String())

	bare := records[2]
	s.Equal(data.TextSentinel, bare.CustomerPhone)
	s.Equal(data.TextSentinel, bare.CustomerName)
	s.True(bare.OriginalPrice.IsZero())
	s.True(bare.TotalDeposit.IsZero())
	s.False(bare.Cancelled)
	s.Equal(data.WorkOrderRaisedStatus, classifier.Classify(bare))
}

func (s *SupplierIntegrationTestSuite) TestDateRangeIsInclusive() {
	from := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records, err := s.repository.GetJoinedOrders(context.Background(), data.Filter{DateFrom: &from, DateTo: &to})
	s.Require().NoError(err)
	s.Equal([]string{"P-100", "P-200"}, s.packages(records))
}

func (s *SupplierIntegrationTestSuite) TestExactMatchFilters() {
	records, err := s.repository.GetJoinedOrders(context.Background(), data.Filter{
		Branch:        "Mall",
		EmployeeLogin: "jdoe",
		CustomerPhone: "0502222222",
	})
	s.Require().NoError(err)
	s.Equal([]string{"P-200"}, s.packages(records))

	records, err = s.repository.GetJoinedOrders(context.Background(), data.Filter{PackageNo: "P-400"})
	s.Require().NoError(err)
	s.Empty(records)
}

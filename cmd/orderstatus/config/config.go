package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"order-status/internal/orderstatus"
	"order-status/internal/orderstatus/data/database"
	"order-status/internal/orderstatus/data/dbrepository"
	"order-status/internal/orderstatus/legacygateway"
	"order-status/internal/orderstatus/service"
	"order-status/pkg/logging"
)

const (
	serverAddressFlag         = "a"
	serverAddressEnv          = "RUN_ADDRESS"
	serverAddressDefault      = "localhost:8080"
	dbConnectionStringFlag    = "d"
	dbConnectionStringEnv     = "DATABASE_URI"
	dbConnectionStringDefault = ""
	dbMigrateFlag             = "m"
	dbMigrateEnv              = "DATABASE_MIGRATE"
	legacyEndpointFlag        = "g"
	legacyEndpointEnv         = "LEGACY_ENDPOINT"
	legacySettingsFileFlag    = "s"
	legacySettingsFileEnv     = "LEGACY_SETTINGS_FILE"
	legacyTemplateFileFlag    = "t"
	legacyTemplateFileEnv     = "LEGACY_TEMPLATE_FILE"
	legacyTimeoutFlag         = "gateway-timeout"
	legacyTimeoutEnv          = "LEGACY_TIMEOUT"
	legacyTimeoutDefault      = legacygateway.DefaultTimeout
	legacyInsecureFlag        = "gateway-insecure"
	legacyInsecureEnv         = "LEGACY_INSECURE_TLS"
	enrichWorkersFlag         = "w"
	enrichWorkersEnv          = "ENRICH_WORKERS"
	enrichWorkersDefault      = 1
	exportDirFlag             = "x"
	exportDirEnv              = "EXPORT_DIR"
	logLevelFlag              = "log-level"
	logLevelEnv               = "LOG_LEVEL"
	logLevelDefault           = "info"
	giftCardTenderFlag        = "gift-card-tender"
	giftCardTenderEnv         = "GIFT_CARD_TENDER"
	excludedStoresFlag        = "excluded-stores"
	excludedStoresEnv         = "EXCLUDED_STORES"
	excludedStoresDefault     = "48,65"
)

type Config struct {
	Server          orderstatus.Config
	DB              database.Config
	Supplier        dbrepository.Config
	Gateway         legacygateway.Config
	Resolver        service.Config
	ExportDir       string
	LogLevel        zapcore.Level
	ShutdownTimeout time.Duration
}

// Load reads .env when present, then flags, then environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return load(flag.CommandLine, os.Args[1:], os.LookupEnv)
}

func load(fs *flag.FlagSet, args []string, lookupEnv func(string) (string, bool)) (*Config, error) {
	serverAddress := fs.String(serverAddressFlag, serverAddressDefault, "Server address host:port")
	dbConnectionString := fs.String(dbConnectionStringFlag, dbConnectionStringDefault, "PostgreSQL connection string")
	dbMigrate := fs.Bool(dbMigrateFlag, false, "Apply the point-of-sale schema migrations")
	legacyEndpoint := fs.String(legacyEndpointFlag, "", "Legacy system endpoint, overrides the settings file")
	legacySettingsFile := fs.String(legacySettingsFileFlag, "", "Legacy settings XML with a SoapOrdURI element")
	legacyTemplateFile := fs.String(legacyTemplateFileFlag, "", "Legacy request template, built-in SOAP envelope when empty")
	legacyTimeout := fs.Duration(legacyTimeoutFlag, legacyTimeoutDefault, "Legacy lookup timeout")
	legacyInsecure := fs.Bool(legacyInsecureFlag, false, "Skip TLS verification for the legacy endpoint")
	enrichWorkers := fs.Int(enrichWorkersFlag, enrichWorkersDefault, "Concurrent legacy lookups during enrichment")
	exportDir := fs.String(exportDirFlag, "", "Directory for export workbooks")
	logLevel := fs.String(logLevelFlag, logLevelDefault, "Log level")
	giftCardTender := fs.String(giftCardTenderFlag, dbrepository.DefaultGiftCardTender, "Tender name summed as gift card amount")
	excludedStores := fs.String(excludedStoresFlag, excludedStoresDefault, "Comma separated store numbers to exclude")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if valStr, ok := lookupEnv(serverAddressEnv); ok {
		*serverAddress = valStr
	}
	if valStr, ok := lookupEnv(dbConnectionStringEnv); ok {
		*dbConnectionString = valStr
	}
	if valStr, ok := lookupEnv(legacyEndpointEnv); ok {
		*legacyEndpoint = valStr
	}
	if valStr, ok := lookupEnv(legacySettingsFileEnv); ok {
		*legacySettingsFile = valStr
	}
	if valStr, ok := lookupEnv(legacyTemplateFileEnv); ok {
		*legacyTemplateFile = valStr
	}
	if valStr, ok := lookupEnv(exportDirEnv); ok {
		*exportDir = valStr
	}
	if valStr, ok := lookupEnv(logLevelEnv); ok {
		*logLevel = valStr
	}
	if valStr, ok := lookupEnv(giftCardTenderEnv); ok {
		*giftCardTender = valStr
	}
	if valStr, ok := lookupEnv(excludedStoresEnv); ok {
		*excludedStores = valStr
	}
	if valStr, ok := lookupEnv(dbMigrateEnv); ok {
		val, err := strconv.ParseBool(valStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", dbMigrateEnv, err)
		}
		*dbMigrate = val
	}
	if valStr, ok := lookupEnv(legacyInsecureEnv); ok {
		val, err := strconv.ParseBool(valStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", legacyInsecureEnv, err)
		}
		*legacyInsecure = val
	}
	if valStr, ok := lookupEnv(legacyTimeoutEnv); ok {
		val, err := time.ParseDuration(valStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", legacyTimeoutEnv, err)
		}
		*legacyTimeout = val
	}
	if valStr, ok := lookupEnv(enrichWorkersEnv); ok {
		val, err := strconv.Atoi(valStr)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", enrichWorkersEnv, err)
		}
		*enrichWorkers = val
	}

	if *dbConnectionString == "" {
		return nil, errors.New("database connection string is not configured")
	}
	if *enrichWorkers < 1 {
		return nil, fmt.Errorf("enrich workers must be positive, got %d", *enrichWorkers)
	}
	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		return nil, err
	}
	stores, err := ParseStores(*excludedStores)
	if err != nil {
		return nil, err
	}
	gateway, err := legacygateway.LoadConfig(*legacyEndpoint, *legacySettingsFile, *legacyTemplateFile)
	if err != nil {
		return nil, err
	}
	gateway.Timeout = *legacyTimeout
	gateway.InsecureSkipVerify = *legacyInsecure

	return &Config{
		Server: orderstatus.Config{
			ServerAddress:   *serverAddress,
			ShutdownTimeout: time.Second * 5,
		},
		DB: database.Config{
			ConnectionString: *dbConnectionString,
			ApplyMigrations:  *dbMigrate,
		},
		Supplier: dbrepository.Config{
			GiftCardTender: *giftCardTender,
			ExcludedStores: stores,
		},
		Gateway: gateway,
		Resolver: service.Config{
			EnrichWorkers: *enrichWorkers,
		},
		ExportDir:       *exportDir,
		LogLevel:        level,
		ShutdownTimeout: time.Second * 10,
	}, nil
}

func ParseStores(list string) ([]int32, error) {
	res := make([]int32, 0)
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		store, err := strconv.ParseInt(item, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid store number %q: %w", item, err)
		}
		res = append(res, int32(store))
	}
	return res, nil
}

package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"order-status/internal/orderstatus/data"
	"order-status/internal/orderstatus/data/database"
	"order-status/internal/orderstatus/data/dbrepository"
	"order-status/internal/orderstatus/export"
	"order-status/internal/orderstatus/service"
	"order-status/pkg/pgxstorage"
)

type exportOptions struct {
	DSN     string
	Dir     string
	Workers int
	Filter  data.FilterInput
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reconciled job orders to a workbook",
		Long: `Query job orders, resolve work orders against the legacy system and
write the result to an XLSX workbook. Any failed lookup aborts the export.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := data.ParseFilter(opts.Filter)
			if err != nil {
				return err
			}
			if opts.DSN == "" {
				return errors.New("--dsn is required")
			}
			logger, err := rootOpts.logger()
			if err != nil {
				return err
			}
			gateway, err := rootOpts.gateway(logger)
			if err != nil {
				return err
			}

			storage, err := pgxstorage.New(cmd.Context(), database.NewPgxDatabaseFactory(database.Config{
				ConnectionString: opts.DSN,
				ConnectTimeout:   10 * time.Second,
			}), pgxstorage.Config{})
			if err != nil {
				return err
			}
			defer storage.Close()

			resolver := service.NewResolver(
				service.Config{EnrichWorkers: opts.Workers},
				dbrepository.New(storage, dbrepository.Config{}, logger),
				gateway,
				export.NewXLSXSink(opts.Dir, logger),
				nil,
				logger,
			)
			path, err := resolver.ExportOrders(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "PostgreSQL connection string")
	cmd.Flags().StringVarP(&opts.Dir, "out", "o", ".", "output directory")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", 1, "concurrent legacy lookups")
	cmd.Flags().StringVar(&opts.Filter.PackageNo, "package", "", "package number")
	cmd.Flags().StringVar(&opts.Filter.Branch, "branch", "", "store name")
	cmd.Flags().StringVar(&opts.Filter.CustomerPhone, "phone", "", "customer phone")
	cmd.Flags().StringVar(&opts.Filter.EmployeeLogin, "employee", "", "employee login")
	cmd.Flags().StringVar(&opts.Filter.ItemCode, "item", "", "item code")
	cmd.Flags().StringVar(&opts.Filter.DateFrom, "from", "", "created on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Filter.DateTo, "to", "", "created on or before (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Filter.Status, "status", "", "final status")

	return cmd
}

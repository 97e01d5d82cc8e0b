package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"order-status/internal/orderstatus/service"
)

// NewLookupCommand creates the lookup command.
func NewLookupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <package-number>...",
		Short: "Resolve legacy status for package numbers",
		Long: `Look every package number up in the legacy order system, in order.

The first failing lookup aborts the command and nothing is printed.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := rootOpts.logger()
			if err != nil {
				return err
			}
			gateway, err := rootOpts.gateway(logger)
			if err != nil {
				return err
			}
			resolver := service.NewResolver(service.Config{}, nil, gateway, nil, nil, logger)

			statuses, err := resolver.ResolveKeys(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("error fetching status: %w", err)
			}
			for i, status := range statuses {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", args[i], status)
			}
			return nil
		},
	}
}

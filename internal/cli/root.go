package cli

import (
	"time"

	"github.com/spf13/cobra"
	"order-status/internal/orderstatus/legacygateway"
	"order-status/pkg/logging"
)

// RootOptions holds the legacy gateway flags shared by all commands.
type RootOptions struct {
	Endpoint     string
	SettingsFile string
	TemplateFile string
	Timeout      time.Duration
	Insecure     bool
	LogLevel     string
}

// NewRootCommand creates the root command for the statusctl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "statusctl",
		Short: "Query job order status from the command line",
		Long:  "Resolve package status against the legacy order system and export reconciled job orders.",
	}

	cmd.PersistentFlags().StringVarP(&opts.Endpoint, "endpoint", "g", "", "legacy system endpoint")
	cmd.PersistentFlags().StringVarP(&opts.SettingsFile, "settings", "s", "", "legacy settings XML with SoapOrdURI")
	cmd.PersistentFlags().StringVarP(&opts.TemplateFile, "template", "t", "", "legacy request template")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "legacy lookup timeout")
	cmd.PersistentFlags().BoolVar(&opts.Insecure, "insecure", false, "skip TLS verification for the legacy endpoint")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level")

	cmd.AddCommand(NewLookupCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

func (o *RootOptions) logger() (*logging.ZapLogger, error) {
	level, err := logging.ParseLevel(o.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewZapLogger(level)
}

func (o *RootOptions) gateway(logger *logging.ZapLogger) (*legacygateway.Gateway, error) {
	cfg, err := legacygateway.LoadConfig(o.Endpoint, o.SettingsFile, o.TemplateFile)
	if err != nil {
		return nil, err
	}
	cfg.Timeout = o.Timeout
	cfg.InsecureSkipVerify = o.Insecure
	return legacygateway.New(cfg, logger, nil), nil
}

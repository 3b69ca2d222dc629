package cmd

import (
	"github.com/softdesk/tracker/internal/api"
	"github.com/softdesk/tracker/internal/config"
	"github.com/softdesk/tracker/internal/telemetry"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the issue tracker API server",
	Run: func(cmd *cobra.Command, args []string) {
		conf := config.ReadConfig()

		shutdownTelemetry := telemetry.NewProvider(conf.OTEL_EXPORTER_OTLP_ENDPOINT)
		defer shutdownTelemetry()

		s := api.New()
		s.Start()
	},
}

// Register the "serve" command
func init() {
	rootCmd.AddCommand(serveCmd)
}

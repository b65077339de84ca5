package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/commerce-reports/pkg/handlers/reports"
	"github.com/de-tools/commerce-reports/pkg/server"
	auditsvc "github.com/de-tools/commerce-reports/pkg/services/audit"
	"github.com/de-tools/commerce-reports/pkg/services/config"
	"github.com/de-tools/commerce-reports/pkg/services/daterange"
	"github.com/de-tools/commerce-reports/pkg/services/export"
	"github.com/de-tools/commerce-reports/pkg/services/report"
	"github.com/de-tools/commerce-reports/pkg/store/sqlite"
	"github.com/de-tools/commerce-reports/pkg/store/sqlite/activity"
	auditstore "github.com/de-tools/commerce-reports/pkg/store/sqlite/audit"
	"github.com/de-tools/commerce-reports/pkg/store/sqlite/orders"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the commerce reports web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "commerce-reports.yaml",
		"Path to the server configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: cfg.DBPath})
	if err != nil {
		return fmt.Errorf("failed to open report database: %w", err)
	}

	orderStore, err := orders.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create order store: %w", err)
	}
	activityStore, err := activity.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create activity store: %w", err)
	}
	reportLog, err := auditstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report log store: %w", err)
	}

	handler := reports.NewHandler(
		daterange.NewResolver(nil),
		report.NewGenerator(orderStore, activityStore),
		export.NewSerializer(),
		auditsvc.BestEffort(reportLog),
	)

	addr := cfg.Addr
	if host, port := os.Getenv("SERVER_HOST"), os.Getenv("SERVER_PORT"); host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Reports: handler,
		},
	})

	return api.Start()
}

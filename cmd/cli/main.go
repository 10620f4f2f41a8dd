package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/donghoonhyun/altar-scheduler-sub001/cmd/cli/commands"
	"github.com/donghoonhyun/altar-scheduler-sub001/internal/config"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/core/services"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/postgres"
	"github.com/donghoonhyun/altar-scheduler-sub001/pkg/utils/logging"
)

var (
	env string
	// app is shared with every command closure; initApp fills it in before
	// any RunE executes.
	app = &commands.AppContext{}
	db  *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Altar Scheduler CLI - Manage monthly altar server rosters",
		Long:  `A CLI tool for managing mass events, availability surveys and monthly duty assignment for parish altar servers.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if db != nil {
				db.Close()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.GenerateMonthCmd(app))
	rootCmd.AddCommand(commands.ListEventsCmd(app))
	rootCmd.AddCommand(commands.AddEventCmd(app))
	rootCmd.AddCommand(commands.RemoveEventCmd(app))
	rootCmd.AddCommand(commands.FixEventCmd(app))
	rootCmd.AddCommand(commands.StatusCmd(app))
	rootCmd.AddCommand(commands.ConfirmMassesCmd(app))
	rootCmd.AddCommand(commands.OpenSurveyCmd(app))
	rootCmd.AddCommand(commands.CloseSurveyCmd(app))
	rootCmd.AddCommand(commands.SetStatusCmd(app))
	rootCmd.AddCommand(commands.SubmitAvailabilityCmd(app))
	rootCmd.AddCommand(commands.ViewResponsesCmd(app))
	rootCmd.AddCommand(commands.AssignServersCmd(app))
	rootCmd.AddCommand(commands.FinalizeMonthCmd(app))
	rootCmd.AddCommand(commands.BackupCmd(app))
	rootCmd.AddCommand(commands.ListServersCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and the database-backed store
func initApp() error {
	ctx := context.Background()

	// Initialize logger
	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	logger.Info("Loading configuration")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully", zap.String("group_id", cfg.GroupID))

	// Connect to the database and apply pending migrations
	logger.Info("Connecting to database")
	db, err = postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Database initialized successfully")

	app.Cfg = cfg
	app.Store = db
	app.Notifier = &services.LoggingNotifier{Logger: logger}
	app.Logger = logger
	app.Ctx = ctx

	return nil
}

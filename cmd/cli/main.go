package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lmorales/storeshift/internal/config"
	"github.com/lmorales/storeshift/pkg/core/scheduler"
	"github.com/lmorales/storeshift/pkg/core/services"
	"github.com/lmorales/storeshift/pkg/db"
	"github.com/lmorales/storeshift/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *db.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "storeshift",
		Short: "StoreShift CLI - Generate weekly staff schedules",
		Long:  `A CLI tool for generating and reviewing weekly shift schedules for retail store staff.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
			if app != nil && app.database != nil {
				app.database.Close()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(initDBCmd())
	rootCmd.AddCommand(generateScheduleCmd())
	rootCmd.AddCommand(viewScheduleCmd())
	rootCmd.AddCommand(listEmployeesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Connecting to database")
	app.database, err = db.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Info("Database initialized successfully")

	return nil
}

// Command definitions

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create any missing database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.Migrate(app.ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("\n✓ Database schema is up to date\n\n")
			return nil
		},
	}
}

func generateScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule [week_start]",
		Short: "Generate the shift schedule for a week",
		Long:  "Run the assignment engine for the given week (Monday, YYYY-MM-DD; defaults to next Monday) and save the result.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart := ""
			if len(args) == 1 {
				weekStart = args[0]
			}

			seedStr, _ := cmd.Flags().GetString("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			force, _ := cmd.Flags().GetBool("force")

			var seed int64
			if seedStr != "" {
				parsed, err := strconv.ParseInt(seedStr, 10, 64)
				if err != nil {
					return fmt.Errorf("seed must be a number: %w", err)
				}
				seed = parsed
			}

			app.logger.Debug("generateSchedule command",
				zap.String("week_start", weekStart),
				zap.Int64("seed", seed),
				zap.Bool("dry_run", dryRun),
				zap.Bool("force", force))

			result, err := services.GenerateSchedule(app.ctx, app.database, app.cfg, app.logger, services.GenerateScheduleOptions{
				WeekStart: weekStart,
				Seed:      seed,
				DryRun:    dryRun,
				Force:     force,
			})
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			outcome := result.Outcome

			fmt.Printf("\n🗓  Weekly Schedule\n\n")
			fmt.Printf("Week Start:  %s\n", outcome.Week.Start.Format("2006-01-02"))
			fmt.Printf("Seed:        %d\n", outcome.Seed)
			if dryRun {
				fmt.Printf("Mode:        DRY RUN (not saved)\n")
			} else if result.Saved {
				fmt.Printf("Status:      ✓ saved (%s)\n", result.ScheduleID)
			} else {
				fmt.Printf("Status:      ✗ not saved, rerun with --force to override\n")
			}
			fmt.Println()

			if len(outcome.Violations) > 0 {
				fmt.Printf("⚠ Violations (%d):\n", len(outcome.Violations))
				for _, v := range outcome.Violations {
					fmt.Printf("  • %s [%s]: %s\n", v.EmployeeID, v.Invariant, v.Description)
				}
				fmt.Println()
			}

			printWeekTable(outcome)

			fmt.Printf("Hours Summary:\n")
			for _, s := range outcome.Summaries {
				line := fmt.Sprintf("  %-12s target %2dh, assigned %2dh", s.EmployeeID, s.TargetHours, s.AssignedHours)
				if s.ShortfallHours > 0 {
					line += fmt.Sprintf(", shortfall %dh", s.ShortfallHours)
				}
				fmt.Println(line)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("seed", "", "Seed for reproducible runs (default: time-based)")
	cmd.Flags().Bool("dry-run", false, "Compute the schedule without saving it")
	cmd.Flags().Bool("force", false, "Save even if the plan has violations")

	return cmd
}

// printWeekTable renders the week grid, one row per employee. Assignments
// arrive in employee then date order, so rows come out grouped already.
func printWeekTable(outcome *scheduler.Outcome) {
	fmt.Printf("%-12s", "")
	for _, d := range outcome.Week.Dates() {
		fmt.Printf("  %-10s", d.Format("Mon 02/01"))
	}
	fmt.Println()

	for i, a := range outcome.Assignments {
		if i%7 == 0 {
			fmt.Printf("%-12s", a.EmployeeID)
		}
		fmt.Printf("  %-10s", string(a.Shift))
		if i%7 == 6 {
			fmt.Println()
		}
	}
	fmt.Println()
}

func viewScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewSchedule [week_start]",
		Short: "Display a stored schedule",
		Long:  "Display the schedule for the given week (Monday, YYYY-MM-DD), or the latest one when omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart := ""
			if len(args) == 1 {
				weekStart = args[0]
			}

			result, err := services.ViewSchedule(app.ctx, app.database, app.cfg, app.logger, weekStart)
			if err != nil {
				return err
			}

			fmt.Printf("\n🗓  Schedule %s\n\n", result.Schedule.ID)
			fmt.Printf("Week Start: %s\n", result.Schedule.WeekStart)
			fmt.Printf("Seed:       %d\n\n", result.Schedule.Seed)

			for _, a := range result.Assignments {
				name := result.Names[a.EmployeeID]
				if name == "" {
					name = a.EmployeeID
				}
				fmt.Printf("  %-20s %s  %s\n", name, a.Date, a.ShiftType)
			}
			fmt.Println()

			fmt.Printf("Hours Summary:\n")
			for _, s := range result.Summaries {
				name := result.Names[s.EmployeeID]
				if name == "" {
					name = s.EmployeeID
				}
				line := fmt.Sprintf("  %-20s target %2dh, assigned %2dh", name, s.TargetHours, s.AssignedHours)
				if s.ShortfallHours > 0 {
					line += fmt.Sprintf(", shortfall %dh", s.ShortfallHours)
				}
				fmt.Println(line)
			}
			fmt.Println()

			return nil
		},
	}
}

func listEmployeesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listEmployees",
		Short: "List the store roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			includeInactive, _ := cmd.Flags().GetBool("all")

			listings, err := services.ListEmployees(app.ctx, app.database, app.logger, includeInactive)
			if err != nil {
				return err
			}

			fmt.Printf("\n👥 Employees (%d)\n\n", len(listings))
			for _, l := range listings {
				status := "active"
				if !l.Employee.Active {
					status = "inactive"
				}
				line := fmt.Sprintf("  %-20s %2dh/week  %-8s", l.Employee.Name, l.Employee.WeeklyHours, status)
				if len(l.RuleKinds) > 0 {
					line += "  " + strings.Join(l.RuleKinds, ", ")
				}
				fmt.Println(line)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("all", false, "Include inactive employees")

	return cmd
}
